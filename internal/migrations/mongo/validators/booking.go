package validators

import "go.mongodb.org/mongo-driver/bson"

const uuidPattern = "^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_id",
			"manager_id",
			"name",
			"start_time",
			"end_time",
			"coffee_option",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  uuidPattern,
			},

			"room_id": bson.M{
				"bsonType": "string",
				"pattern":  uuidPattern,
			},

			"manager_id": bson.M{
				"bsonType": "string",
				"pattern":  uuidPattern,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},

			"coffee_option": bson.M{
				"bsonType": "bool",
			},

			"coffee_quantity": bson.M{
				"bsonType": []string{"int", "long", "null"},
				"minimum":  1,
				"maximum":  50,
			},

			"coffee_description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},

			"deleted_at": bson.M{
				"bsonType": []string{"date", "null"},
			},
		},
	},
}

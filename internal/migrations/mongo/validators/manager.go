package validators

import "go.mongodb.org/mongo-driver/bson"

var ManagerValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  uuidPattern,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 255,
			},

			"email": bson.M{
				"bsonType":  "string",
				"pattern":   "^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$",
				"maxLength": 255,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"maxLength": 20,
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

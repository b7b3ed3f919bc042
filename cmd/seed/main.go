package main

import (
	"context"
	"flag"
	"time"

	"roomly/pkg/config"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const ServiceName = "seed"

func main() {
	clear := flag.Bool("clear", false, "delete all existing data before seeding")
	flag.Parse()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)

	if *clear {
		cfg.Log.Warn("Clearing existing data")
		for _, name := range []string{"Bookings", "Rooms", "Managers", "Locations"} {
			if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				cfg.Log.Fatal("Failed to clear collection", "collection", name, "error", err)
			}
		}
	}

	count, err := db.Collection("Locations").CountDocuments(ctx, bson.M{})
	if err != nil {
		cfg.Log.Fatal("Failed to check existing data", "error", err)
	}
	if count > 0 {
		cfg.Log.Warn("Data already present, use -clear to reseed")
		return
	}

	now := time.Now().UTC().Truncate(time.Millisecond)

	cfg.Log.Info("Creating locations")
	locations := []model.Location{
		{Name: "Main Building", Address: "123 Commerce St, Downtown", Description: "Primary company building"},
		{Name: "Admin Annex", Address: "125 Commerce St, Downtown", Description: "Annex with administrative rooms"},
		{Name: "Training Center", Address: "456 Knowledge Ave, Tech Park", Description: "Dedicated training and workshop center"},
	}
	for i := range locations {
		locations[i].ID = uuid.New().String()
		locations[i].CreatedAt = now
		locations[i].UpdatedAt = now
	}
	insert(ctx, cfg, db, "Locations", toDocs(locations))

	cfg.Log.Info("Creating rooms")
	capacity := func(n int) *int { return &n }
	rooms := []model.Room{
		{LocationID: locations[0].ID, Name: "Meeting Room A", Capacity: capacity(10), Description: "Room with projector and air conditioning"},
		{LocationID: locations[0].ID, Name: "Meeting Room B", Capacity: capacity(6), Description: "Quieter room for smaller meetings"},
		{LocationID: locations[0].ID, Name: "Main Auditorium", Capacity: capacity(50), Description: "Auditorium for presentations and events"},
		{LocationID: locations[0].ID, Name: "Huddle Room", Capacity: capacity(2), Description: "Two-seat room, perfect for 1:1s"},
		{LocationID: locations[0].ID, Name: "Medium Room", Capacity: capacity(12), Description: "Twelve-seat room, good for team meetings"},
		{LocationID: locations[1].ID, Name: "Conference Room", Capacity: capacity(15), Description: "Conference room with video conferencing"},
		{LocationID: locations[1].ID, Name: "Brainstorming Room", Capacity: capacity(8), Description: "Creative room with a whiteboard"},
		{LocationID: locations[1].ID, Name: "Small Room", Capacity: capacity(4), Description: "Four-seat room, ideal for small teams"},
		{LocationID: locations[1].ID, Name: "Executive Room", Capacity: capacity(8), Description: "Executive room for board meetings"},
		{LocationID: locations[2].ID, Name: "Computer Lab", Capacity: capacity(20), Description: "Lab with workstations for training"},
		{LocationID: locations[2].ID, Name: "Workshop Room", Capacity: capacity(25), Description: "Flexible room for workshops"},
		{LocationID: locations[2].ID, Name: "Large Room", Capacity: capacity(30), Description: "Thirty-seat room, ideal for training sessions"},
		{LocationID: locations[2].ID, Name: "Presentation Room", Capacity: capacity(40), Description: "Forty-seat room for presentations and demos"},
	}
	for i := range rooms {
		rooms[i].ID = uuid.New().String()
		rooms[i].CreatedAt = now
		rooms[i].UpdatedAt = now
	}
	insert(ctx, cfg, db, "Rooms", toDocs(rooms))

	cfg.Log.Info("Creating managers")
	managers := seedManagers(now)
	insert(ctx, cfg, db, "Managers", toDocs(managers))

	cfg.Log.Info("Creating sample bookings")
	quantity := func(n int) *int { return &n }
	tomorrow := now.Add(24 * time.Hour).Truncate(time.Hour)
	bookings := []model.Booking{
		{
			RoomID:    rooms[0].ID,
			ManagerID: managers[0].ID,
			Name:      "Weekly team sync",
			StartTime: tomorrow.Add(9 * time.Hour),
			EndTime:   tomorrow.Add(10 * time.Hour),
		},
		{
			RoomID:            rooms[2].ID,
			ManagerID:         managers[1].ID,
			Name:              "Quarterly all hands",
			Description:       "Company-wide quarterly review",
			StartTime:         tomorrow.Add(14 * time.Hour),
			EndTime:           tomorrow.Add(16 * time.Hour),
			CoffeeOption:      true,
			CoffeeQuantity:    quantity(40),
			CoffeeDescription: "Coffee and pastries for all attendees",
		},
	}
	for i := range bookings {
		bookings[i].ID = uuid.New().String()
		bookings[i].CreatedAt = now
		bookings[i].UpdatedAt = now
	}
	insert(ctx, cfg, db, "Bookings", toDocs(bookings))

	cfg.Log.Info("Seed completed",
		"locations", len(locations),
		"rooms", len(rooms),
		"managers", len(managers),
		"bookings", len(bookings),
	)
}

// seedManagers builds the manager fixtures. Phones go through the sanitizer so
// the stored values are canonical E.164, same as the write path expects.
func seedManagers(now time.Time) []model.Manager {
	managers := []model.Manager{
		{Name: "Joao Silva", Email: "joao.silva@example.com", Phone: " +551198765432 "},
		{Name: "Maria Santos", Email: "maria.santos@example.com", Phone: "+551198765433"},
		{Name: "Pedro Oliveira", Email: "pedro.oliveira@example.com", Phone: "+551198765434"},
		{Name: "Ana Costa", Email: "ana.costa@example.com", Phone: "+551198765435"},
		{Name: "Carlos Ferreira", Email: "carlos.ferreira@example.com", Phone: "+551198765436"},
	}
	for i := range managers {
		managers[i].ID = uuid.New().String()
		managers[i].Phone = sanitizer.SanitizePhone(managers[i].Phone)
		managers[i].CreatedAt = now
		managers[i].UpdatedAt = now
	}
	return managers
}

func toDocs[T any](items []T) []any {
	docs := make([]any, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}

func insert(ctx context.Context, cfg *config.Config, db *mongo.Database, collection string, docs []any) {
	if _, err := db.Collection(collection).InsertMany(ctx, docs); err != nil {
		cfg.Log.Fatal("Failed to seed collection", "collection", collection, "error", err)
	}
}

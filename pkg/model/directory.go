package model

import "time"

type Location struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Name        string     `json:"name" bson:"name" validate:"required,min=2,max=255"`
	Address     string     `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=500"`
	Description string     `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

func (l *Location) IsActive() bool {
	return l.DeletedAt == nil
}

type Room struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	LocationID  string     `json:"location_id" bson:"location_id" validate:"required,uuid4"`
	Name        string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Capacity    *int       `json:"capacity,omitempty" bson:"capacity,omitempty" validate:"omitempty,min=1,max=1000"`
	Description string     `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

func (r *Room) IsActive() bool {
	return r.DeletedAt == nil
}

type Manager struct {
	ID        string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Name      string     `json:"name" bson:"name" validate:"required,min=2,max=255"`
	Email     string     `json:"email" bson:"email" validate:"required,email"`
	Phone     string     `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

func (m *Manager) IsActive() bool {
	return m.DeletedAt == nil
}

// Package domain defines the persistence models for the airline booking
// backend: geography (countries, cities, airports), fleet (airplane types,
// airplanes, crews), scheduling (routes, flights), booking (orders, tickets)
// and the embedded customer-support chat. All types are mapped with GORM.
package domain

import (
	"time"
)

// Country is a top-level geographic entity. Country names are unique.
type Country struct {
	ID   uint   `json:"id"   gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the database table name for Country.
func (Country) TableName() string { return "countries" }

// City belongs to a country and anchors airports geographically.
type City struct {
	ID        uint   `json:"id"   gorm:"primaryKey"`
	Name      string `json:"name" gorm:"type:varchar(100);not null"`
	CountryID uint   `json:"country_id" gorm:"not null;index"`

	Country Country `json:"-" gorm:"foreignKey:CountryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for City.
func (City) TableName() string { return "cities" }

// Airport is a named airfield tied to its closest big city. Airport names
// are unique.
type Airport struct {
	ID               uint   `json:"id"   gorm:"primaryKey"`
	Name             string `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	ClosestBigCityID uint   `json:"closest_big_city_id" gorm:"not null;index"`

	ClosestBigCity City `json:"-" gorm:"foreignKey:ClosestBigCityID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Airport.
func (Airport) TableName() string { return "airports" }

// AirplaneType is a unique airframe model (e.g. "Boeing 737-800").
type AirplaneType struct {
	ID   uint   `json:"id"   gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the database table name for AirplaneType.
func (AirplaneType) TableName() string { return "airplane_types" }

// Airplane is a concrete aircraft with a seat grid of Rows x SeatsInRow.
// ImagePath holds the storage key of the uploaded photo; empty means no
// image has been attached yet (uploads are last-write-wins).
type Airplane struct {
	ID             uint   `json:"id"   gorm:"primaryKey"`
	Name           string `json:"name" gorm:"type:varchar(255);not null"`
	Rows           int    `json:"rows" gorm:"not null"`
	SeatsInRow     int    `json:"seats_in_row" gorm:"not null"`
	AirplaneTypeID uint   `json:"airplane_type_id" gorm:"not null;index"`
	ImagePath      string `json:"image,omitempty" gorm:"type:varchar(255)"`

	AirplaneType AirplaneType `json:"-" gorm:"foreignKey:AirplaneTypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Airplane.
func (Airplane) TableName() string { return "airplanes" }

// Capacity returns the total number of seats on the airplane.
func (a Airplane) Capacity() int { return a.Rows * a.SeatsInRow }

// Crew is a crew member assignable to flights (many-to-many).
type Crew struct {
	ID        uint   `json:"id"         gorm:"primaryKey"`
	FirstName string `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string `json:"last_name"  gorm:"type:varchar(100);not null"`
}

// TableName returns the database table name for Crew.
func (Crew) TableName() string { return "crews" }

// FullName returns "First Last" for list shapes.
func (c Crew) FullName() string { return c.FirstName + " " + c.LastName }

// Route connects a source airport to a destination airport. Distance is in
// kilometres. Source and destination are expected to differ.
type Route struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	SourceID      uint `json:"source_id"      gorm:"not null;index"`
	DestinationID uint `json:"destination_id" gorm:"not null;index"`
	Distance      int  `json:"distance" gorm:"not null"`

	Source      Airport `json:"-" gorm:"foreignKey:SourceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Destination Airport `json:"-" gorm:"foreignKey:DestinationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Route.
func (Route) TableName() string { return "routes" }

// Flight is a scheduled trip of one airplane over one route with an assigned
// crew. Listings are ordered by (departure_time, arrival_time).
//
// FreeTicketsSeat is a derived, read-only column populated only by the
// annotated list/detail queries: rows * seats_in_row minus sold tickets,
// computed inside the same query so it is consistent with the row snapshot.
type Flight struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	DepartureTime time.Time `json:"departure_time" gorm:"not null;index"`
	ArrivalTime   time.Time `json:"arrival_time"   gorm:"not null"`
	RouteID       uint      `json:"route_id"    gorm:"not null;index"`
	AirplaneID    uint      `json:"airplane_id" gorm:"not null;index"`

	Route    Route    `json:"-" gorm:"foreignKey:RouteID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Airplane Airplane `json:"-" gorm:"foreignKey:AirplaneID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Crew     []Crew   `json:"-" gorm:"many2many:flight_crew;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	FreeTicketsSeat int64 `json:"free_tickets_seat" gorm:"->;-:migration"`
}

// TableName returns the database table name for Flight.
func (Flight) TableName() string { return "flights" }

// Order groups the tickets bought by one user in a single checkout. Orders
// are strictly owner-scoped: a user only ever sees their own.
type Order struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);not null;index:idx_user_orders"`
	CreatedAt time.Time `json:"created_at"`

	Tickets []Ticket `json:"tickets" gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Order.
func (Order) TableName() string { return "orders" }

// Ticket reserves one seat (row, seat) on a flight as part of an order.
// The (flight_id, row, seat) triple is unique at the database level; that
// constraint is what serializes concurrent purchases of the same seat.
type Ticket struct {
	ID       uint `json:"id"   gorm:"primaryKey"`
	Row      int  `json:"row"  gorm:"not null;uniqueIndex:ux_flight_row_seat,priority:2"`
	Seat     int  `json:"seat" gorm:"not null;uniqueIndex:ux_flight_row_seat,priority:3"`
	FlightID uint `json:"flight_id" gorm:"not null;index;uniqueIndex:ux_flight_row_seat,priority:1"`
	OrderID  uint `json:"order_id"  gorm:"not null;index"`

	Flight Flight `json:"-" gorm:"foreignKey:FlightID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Order  Order  `json:"-" gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Ticket.
func (Ticket) TableName() string { return "tickets" }

// ChatSupport is a support conversation thread. Enabled threads are the only
// ones exposed by the API; IsSupport marks threads that appear in the staff
// support queue. The author is auto-joined to the member set on creation.
type ChatSupport struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Topic     string    `json:"topic" gorm:"type:varchar(255);not null;default:'Support request'"`
	// Enabled carries no column default: GORM skips zero-value fields on
	// insert when one is set, which would make Enabled=false unstorable.
	Enabled   bool      `json:"enabled"    gorm:"not null"`
	IsSupport bool      `json:"is_support" gorm:"not null;default:false"`
	AuthorID  string    `json:"author_created" gorm:"type:varchar(64);not null;index"`
	CreatedAt time.Time `json:"created_at"`

	Members  []ChatMember  `json:"-" gorm:"foreignKey:ChatSupportID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Messages []ChatMessage `json:"-" gorm:"foreignKey:ChatSupportID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ChatSupport.
func (ChatSupport) TableName() string { return "chat_supports" }

// ChatMember is the explicit membership join between a support thread and a
// user. The (chat, user) pair is unique; connect/disconnect operations are
// deliberately strict and fail on duplicate transitions.
type ChatMember struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ChatSupportID uint      `json:"chat_support_id" gorm:"not null;index;uniqueIndex:ux_chat_member,priority:1"`
	UserID        string    `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_chat_member,priority:2"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the database table name for ChatMember.
func (ChatMember) TableName() string { return "chat_members" }

// ChatMessage is a single message inside a support thread. Messages can be
// edited or deleted only by their author; lookups for mutation are scoped to
// (id, user_id), so a foreign message surfaces as not found.
type ChatMessage struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Text          string    `json:"text" gorm:"type:text;not null"`
	UserID        string    `json:"user_id" gorm:"type:varchar(64);not null;index"`
	ChatSupportID uint      `json:"support_msg" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	ChatSupport ChatSupport `json:"-" gorm:"foreignKey:ChatSupportID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ChatMessage.
func (ChatMessage) TableName() string { return "chat_messages" }

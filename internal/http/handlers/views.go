// Read-model views for API responses.
//
// List endpoints flatten related entities to display names so tables render
// without extra lookups; detail endpoints nest the full related objects.
// Write payloads always reference relations by id (see the request DTOs in
// the handler files), so these views are strictly output shapes.
package handlers

import (
	"fmt"

	"github.com/dkosteva/go-airport-backend/internal/domain"
)

// CityView is the flattened list shape of a city.
type CityView struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// CityDetailView nests the owning country.
type CityDetailView struct {
	ID      uint           `json:"id"`
	Name    string         `json:"name"`
	Country domain.Country `json:"country"`
}

// AirportView is the flattened list shape of an airport.
type AirportView struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

// AirportDetailView nests the city and, through it, the country.
type AirportDetailView struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	ClosestBigCity CityDetailView `json:"closest_big_city"`
}

// AirplaneView is the flattened list shape of an airplane.
type AirplaneView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
	AirplaneType string `json:"airplane_type"`
	Image        string `json:"image,omitempty"`
}

// AirplaneDetailView nests the airframe type.
type AirplaneDetailView struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Rows         int                 `json:"rows"`
	SeatsInRow   int                 `json:"seats_in_row"`
	Capacity     int                 `json:"capacity"`
	AirplaneType domain.AirplaneType `json:"airplane_type"`
	Image        string              `json:"image,omitempty"`
}

// CrewView adds the combined full name to a crew member.
type CrewView struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

// RouteView is the flattened list shape of a route.
type RouteView struct {
	ID          uint   `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

// RouteDetailView nests both endpoint airports.
type RouteDetailView struct {
	ID          uint              `json:"id"`
	Source      AirportDetailView `json:"source"`
	Destination AirportDetailView `json:"destination"`
	Distance    int               `json:"distance"`
}

// FlightView is the flattened list shape of a flight, including the derived
// free-seat count.
type FlightView struct {
	ID               uint     `json:"id"`
	Route            string   `json:"route"`
	DepartureTime    string   `json:"departure_time"`
	ArrivalTime      string   `json:"arrival_time"`
	AirplaneName     string   `json:"airplane_name"`
	AirplaneCapacity int      `json:"airplane_capacity"`
	Crew             []string `json:"crew"`
	FreeTicketsSeat  int64    `json:"free_tickets_seat"`
}

// FlightDetailView nests route, airplane and crew in full.
type FlightDetailView struct {
	ID              uint               `json:"id"`
	DepartureTime   string             `json:"departure_time"`
	ArrivalTime     string             `json:"arrival_time"`
	Route           RouteDetailView    `json:"route"`
	Airplane        AirplaneDetailView `json:"airplane"`
	Crew            []CrewView         `json:"crew"`
	FreeTicketsSeat int64              `json:"free_tickets_seat"`
}

// TicketView is a ticket together with the flight it reserves a seat on.
type TicketView struct {
	ID     uint       `json:"id"`
	Row    int        `json:"row"`
	Seat   int        `json:"seat"`
	Flight FlightView `json:"flight"`
}

// OrderView is an order with its tickets expanded.
type OrderView struct {
	ID        uint         `json:"id"`
	CreatedAt string       `json:"created_at"`
	Tickets   []TicketView `json:"tickets"`
}

// ChatView is a support thread with its member user ids and messages.
type ChatView struct {
	ID        uint                 `json:"id"`
	Topic     string               `json:"topic"`
	Enabled   bool                 `json:"enabled"`
	IsSupport bool                 `json:"is_support"`
	AuthorID  string               `json:"author_created"`
	CreatedAt string               `json:"created_at"`
	Members   []string             `json:"members"`
	Messages  []domain.ChatMessage `json:"messages"`
}

const apiTimeLayout = "2006-01-02T15:04:05Z07:00"

func newCityView(c domain.City) CityView {
	return CityView{ID: c.ID, Name: c.Name, Country: c.Country.Name}
}

func newCityDetailView(c domain.City) CityDetailView {
	return CityDetailView{ID: c.ID, Name: c.Name, Country: c.Country}
}

func newAirportView(a domain.Airport) AirportView {
	return AirportView{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity.Name}
}

func newAirportDetailView(a domain.Airport) AirportDetailView {
	return AirportDetailView{
		ID:             a.ID,
		Name:           a.Name,
		ClosestBigCity: newCityDetailView(a.ClosestBigCity),
	}
}

func newAirplaneView(a domain.Airplane) AirplaneView {
	return AirplaneView{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		AirplaneType: a.AirplaneType.Name,
		Image:        a.ImagePath,
	}
}

func newAirplaneDetailView(a domain.Airplane) AirplaneDetailView {
	return AirplaneDetailView{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		AirplaneType: a.AirplaneType,
		Image:        a.ImagePath,
	}
}

func newCrewView(cr domain.Crew) CrewView {
	return CrewView{
		ID:        cr.ID,
		FirstName: cr.FirstName,
		LastName:  cr.LastName,
		FullName:  cr.FullName(),
	}
}

func routeLabel(r domain.Route) string {
	return fmt.Sprintf("%s - %s", r.Source.Name, r.Destination.Name)
}

func newRouteView(r domain.Route) RouteView {
	return RouteView{
		ID:          r.ID,
		Source:      r.Source.Name,
		Destination: r.Destination.Name,
		Distance:    r.Distance,
	}
}

func newRouteDetailView(r domain.Route) RouteDetailView {
	return RouteDetailView{
		ID:          r.ID,
		Source:      newAirportDetailView(r.Source),
		Destination: newAirportDetailView(r.Destination),
		Distance:    r.Distance,
	}
}

func newFlightView(f domain.Flight) FlightView {
	crew := make([]string, 0, len(f.Crew))
	for _, cr := range f.Crew {
		crew = append(crew, cr.FullName())
	}
	return FlightView{
		ID:               f.ID,
		Route:            routeLabel(f.Route),
		DepartureTime:    f.DepartureTime.Format(apiTimeLayout),
		ArrivalTime:      f.ArrivalTime.Format(apiTimeLayout),
		AirplaneName:     f.Airplane.Name,
		AirplaneCapacity: f.Airplane.Capacity(),
		Crew:             crew,
		FreeTicketsSeat:  f.FreeTicketsSeat,
	}
}

func newFlightDetailView(f domain.Flight) FlightDetailView {
	crew := make([]CrewView, 0, len(f.Crew))
	for _, cr := range f.Crew {
		crew = append(crew, newCrewView(cr))
	}
	return FlightDetailView{
		ID:              f.ID,
		DepartureTime:   f.DepartureTime.Format(apiTimeLayout),
		ArrivalTime:     f.ArrivalTime.Format(apiTimeLayout),
		Route:           newRouteDetailView(f.Route),
		Airplane:        newAirplaneDetailView(f.Airplane),
		Crew:            crew,
		FreeTicketsSeat: f.FreeTicketsSeat,
	}
}

func newOrderView(o domain.Order) OrderView {
	tickets := make([]TicketView, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tickets = append(tickets, TicketView{
			ID:     t.ID,
			Row:    t.Row,
			Seat:   t.Seat,
			Flight: newFlightView(t.Flight),
		})
	}
	return OrderView{
		ID:        o.ID,
		CreatedAt: o.CreatedAt.Format(apiTimeLayout),
		Tickets:   tickets,
	}
}

func newChatView(ch domain.ChatSupport) ChatView {
	members := make([]string, 0, len(ch.Members))
	for _, m := range ch.Members {
		members = append(members, m.UserID)
	}
	messages := ch.Messages
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return ChatView{
		ID:        ch.ID,
		Topic:     ch.Topic,
		Enabled:   ch.Enabled,
		IsSupport: ch.IsSupport,
		AuthorID:  ch.AuthorID,
		CreatedAt: ch.CreatedAt.Format(apiTimeLayout),
		Members:   members,
		Messages:  messages,
	}
}

func newCityViews(cs []domain.City) []CityView {
	out := make([]CityView, 0, len(cs))
	for _, c := range cs {
		out = append(out, newCityView(c))
	}
	return out
}

func newAirportViews(as []domain.Airport) []AirportView {
	out := make([]AirportView, 0, len(as))
	for _, a := range as {
		out = append(out, newAirportView(a))
	}
	return out
}

func newAirplaneViews(as []domain.Airplane) []AirplaneView {
	out := make([]AirplaneView, 0, len(as))
	for _, a := range as {
		out = append(out, newAirplaneView(a))
	}
	return out
}

func newCrewViews(cs []domain.Crew) []CrewView {
	out := make([]CrewView, 0, len(cs))
	for _, cr := range cs {
		out = append(out, newCrewView(cr))
	}
	return out
}

func newRouteViews(rs []domain.Route) []RouteView {
	out := make([]RouteView, 0, len(rs))
	for _, r := range rs {
		out = append(out, newRouteView(r))
	}
	return out
}

func newFlightViews(fs []domain.Flight) []FlightView {
	out := make([]FlightView, 0, len(fs))
	for _, f := range fs {
		out = append(out, newFlightView(f))
	}
	return out
}

func newOrderViews(os []domain.Order) []OrderView {
	out := make([]OrderView, 0, len(os))
	for _, o := range os {
		out = append(out, newOrderView(o))
	}
	return out
}

func newChatViews(chs []domain.ChatSupport) []ChatView {
	out := make([]ChatView, 0, len(chs))
	for _, ch := range chs {
		out = append(out, newChatView(ch))
	}
	return out
}

package domain

import "testing"

func TestTableNames(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{Country{}.TableName(), "countries"},
		{City{}.TableName(), "cities"},
		{Airport{}.TableName(), "airports"},
		{AirplaneType{}.TableName(), "airplane_types"},
		{Airplane{}.TableName(), "airplanes"},
		{Crew{}.TableName(), "crews"},
		{Route{}.TableName(), "routes"},
		{Flight{}.TableName(), "flights"},
		{Order{}.TableName(), "orders"},
		{Ticket{}.TableName(), "tickets"},
		{ChatSupport{}.TableName(), "chat_supports"},
		{ChatMember{}.TableName(), "chat_members"},
		{ChatMessage{}.TableName(), "chat_messages"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("TableName() = %q, want %q", c.got, c.want)
		}
	}
}

func TestAirplaneCapacity(t *testing.T) {
	a := Airplane{Rows: 20, SeatsInRow: 6}
	if got := a.Capacity(); got != 120 {
		t.Fatalf("Capacity() = %d, want 120", got)
	}
	if got := (Airplane{}).Capacity(); got != 0 {
		t.Fatalf("Capacity() on zero airplane = %d, want 0", got)
	}
}

func TestCrewFullName(t *testing.T) {
	c := Crew{FirstName: "Amelia", LastName: "Earhart"}
	if got := c.FullName(); got != "Amelia Earhart" {
		t.Fatalf("FullName() = %q", got)
	}
}

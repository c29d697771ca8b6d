package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkosteva/go-airport-backend/internal/config"
	"github.com/dkosteva/go-airport-backend/internal/domain"
	"github.com/dkosteva/go-airport-backend/internal/http/middleware"
	"github.com/dkosteva/go-airport-backend/internal/services"
	"github.com/dkosteva/go-airport-backend/internal/storage"
)

func init() { gin.SetMode(gin.TestMode) }

// newAPIDB opens a throwaway file-backed SQLite database with the full schema.
func newAPIDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("api_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := db.AutoMigrate(
		&domain.Country{}, &domain.City{}, &domain.Airport{},
		&domain.AirplaneType{}, &domain.Airplane{}, &domain.Crew{},
		&domain.Route{}, &domain.Flight{},
		&domain.Order{}, &domain.Ticket{},
		&domain.ChatSupport{}, &domain.ChatMember{}, &domain.ChatMessage{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestRouter wires real services over a fresh database and mounts every
// endpoint without the policy middleware; authorization is covered by the
// router and middleware tests.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := newAPIDB(t)
	images, err := storage.NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("image store: %v", err)
	}

	cfg := config.Config{PageSize: 5, MaxPageSize: 100, MaxImageSize: 1 << 20}
	h := New(
		&services.LocationService{DB: db},
		&services.FleetService{DB: db, Images: images},
		&services.FlightService{DB: db},
		&services.OrderService{DB: db},
		services.NewChatService(db),
		&cfg,
	)

	r := gin.New()
	r.Use(middleware.Identity())

	r.GET("/countries", h.ListCountries)
	r.GET("/countries/:id", h.GetCountry)
	r.POST("/countries", h.CreateCountry)
	r.PUT("/countries/:id", h.UpdateCountry)
	r.DELETE("/countries/:id", h.DeleteCountry)

	r.GET("/cities", h.ListCities)
	r.GET("/cities/:id", h.GetCity)
	r.POST("/cities", h.CreateCity)
	r.PUT("/cities/:id", h.UpdateCity)
	r.DELETE("/cities/:id", h.DeleteCity)

	r.GET("/airports", h.ListAirports)
	r.GET("/airports/:id", h.GetAirport)
	r.POST("/airports", h.CreateAirport)
	r.PUT("/airports/:id", h.UpdateAirport)
	r.DELETE("/airports/:id", h.DeleteAirport)

	r.GET("/airplane_types", h.ListAirplaneTypes)
	r.POST("/airplane_types", h.CreateAirplaneType)
	r.GET("/airplane_types/:id", h.GetAirplaneType)
	r.PUT("/airplane_types/:id", h.UpdateAirplaneType)
	r.DELETE("/airplane_types/:id", h.DeleteAirplaneType)

	r.GET("/airplanes", h.ListAirplanes)
	r.GET("/airplanes/:id", h.GetAirplane)
	r.POST("/airplanes", h.CreateAirplane)
	r.PUT("/airplanes/:id", h.UpdateAirplane)
	r.DELETE("/airplanes/:id", h.DeleteAirplane)
	r.POST("/airplanes/:id/upload-image", h.UploadAirplaneImage)

	r.GET("/crews", h.ListCrews)
	r.POST("/crews", h.CreateCrew)
	r.GET("/crews/:id", h.GetCrew)
	r.PUT("/crews/:id", h.UpdateCrew)
	r.DELETE("/crews/:id", h.DeleteCrew)

	r.GET("/routes", h.ListRoutes)
	r.GET("/routes/:id", h.GetRoute)
	r.POST("/routes", h.CreateRoute)
	r.PUT("/routes/:id", h.UpdateRoute)
	r.DELETE("/routes/:id", h.DeleteRoute)

	r.GET("/flights", h.ListFlights)
	r.GET("/flights/:id", h.GetFlight)
	r.POST("/flights", h.CreateFlight)
	r.PUT("/flights/:id", h.UpdateFlight)
	r.DELETE("/flights/:id", h.DeleteFlight)

	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.POST("/orders", h.CreateOrder)

	r.GET("/chat_support", h.ListChats)
	r.GET("/chat_support/:id", h.GetChat)
	r.POST("/chat_support", h.CreateChat)
	r.PUT("/chat_support/:id", h.UpdateChat)
	r.DELETE("/chat_support/:id", h.DeleteChat)
	r.POST("/chat_support/:id/create_message", h.CreateChatMessage)
	r.PUT("/chat_support/:id/update_message/:message_id", h.UpdateChatMessage)
	r.DELETE("/chat_support/:id/delete_message/:message_id", h.DeleteChatMessage)
	r.PUT("/chat_support/:id/connect_support_to_chat", h.ConnectToChat)
	r.PUT("/chat_support/:id/disconnect_user_from_chat", h.DisconnectFromChat)

	return r, db
}

// doJSON performs a JSON request as the given user and returns the recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path, userID string, staff bool, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	if staff {
		req.Header.Set(middleware.HeaderUserStaff, "true")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals the recorded response body into out.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}

// decodeErr unmarshals the error envelope.
func decodeErr(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	decodeBody(t, w, &e)
	return e
}

// seedAirportHTTP inserts a country -> city -> airport chain directly.
func seedAirportHTTP(t *testing.T, db *gorm.DB, country, city, airport string) domain.Airport {
	t.Helper()

	co := domain.Country{Name: country}
	if err := db.Create(&co).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	ci := domain.City{Name: city, CountryID: co.ID}
	if err := db.Create(&ci).Error; err != nil {
		t.Fatalf("seed city: %v", err)
	}
	ap := domain.Airport{Name: airport, ClosestBigCityID: ci.ID}
	if err := db.Create(&ap).Error; err != nil {
		t.Fatalf("seed airport: %v", err)
	}
	return ap
}

// seedFlightHTTP builds a complete route + airplane + flight graph.
func seedFlightHTTP(t *testing.T, db *gorm.DB, rows, seats int) domain.Flight {
	t.Helper()

	src := seedAirportHTTP(t, db, "UK "+t.Name(), "London "+t.Name(), "Heathrow "+t.Name())
	dst := seedAirportHTTP(t, db, "France "+t.Name(), "Paris "+t.Name(), "CDG "+t.Name())

	at := domain.AirplaneType{Name: "A320 " + t.Name()}
	if err := db.Create(&at).Error; err != nil {
		t.Fatalf("seed type: %v", err)
	}
	plane := domain.Airplane{Name: "F-TEST", Rows: rows, SeatsInRow: seats, AirplaneTypeID: at.ID}
	if err := db.Create(&plane).Error; err != nil {
		t.Fatalf("seed plane: %v", err)
	}
	route := domain.Route{SourceID: src.ID, DestinationID: dst.ID, Distance: 344}
	if err := db.Create(&route).Error; err != nil {
		t.Fatalf("seed route: %v", err)
	}

	dep := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	fl := domain.Flight{DepartureTime: dep, ArrivalTime: dep.Add(2 * time.Hour), RouteID: route.ID, AirplaneID: plane.ID}
	if err := db.Create(&fl).Error; err != nil {
		t.Fatalf("seed flight: %v", err)
	}
	return fl
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}

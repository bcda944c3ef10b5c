package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Car is the subset of the car payload the seeder sends.
type Car struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"licensePlate"`
	VIN          string `json:"vin"`
	Color        string `json:"color,omitempty"`
	Mileage      int    `json:"mileage"`
}

// Service is one catalog entry.
type Service struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	BasePrice   float64 `json:"basePrice"`
	Duration    int     `json:"duration"`
}

// Part is a parts line on a service record.
type Part struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Cost     float64 `json:"cost"`
}

// ServiceRecord is the create payload for a service record.
type ServiceRecord struct {
	CarID      string  `json:"carId"`
	ServiceID  string  `json:"serviceId"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate,omitempty"`
	Status     string  `json:"status"`
	Cost       float64 `json:"cost"`
	Technician string  `json:"technician"`
	PartsUsed  []Part  `json:"partsUsed"`
}

// Payment is the create payload for a payment.
type Payment struct {
	ServiceRecordID string  `json:"serviceRecordId"`
	Amount          float64 `json:"amount"`
	PaymentMethod   string  `json:"paymentMethod"`
	Status          string  `json:"status"`
}

var catalog = []Service{
	{Name: "Oil Change", Description: "Engine oil and filter", BasePrice: 49.99, Duration: 30},
	{Name: "Brake Service", Description: "Pads and rotor inspection", BasePrice: 189.00, Duration: 120},
	{Name: "Tire Rotation", BasePrice: 29.99, Duration: 30},
	{Name: "Battery Replacement", BasePrice: 149.50, Duration: 45},
	{Name: "Full Inspection", BasePrice: 99.00, Duration: 90},
}

var partsByService = map[string][]Part{
	"Oil Change":          {{Name: "Oil Filter", Quantity: 1, Cost: 8.99}, {Name: "Engine Oil 5W-30", Quantity: 5, Cost: 6.50}},
	"Brake Service":       {{Name: "Brake Pads", Quantity: 2, Cost: 34.00}},
	"Battery Replacement": {{Name: "12V Battery", Quantity: 1, Cost: 119.00}},
}

var (
	makes       = []string{"Toyota", "Honda", "Ford", "BMW", "Volkswagen"}
	models      = map[string][]string{"Toyota": {"Corolla", "Camry"}, "Honda": {"Civic", "Accord"}, "Ford": {"Focus", "F-150"}, "BMW": {"320i", "X5"}, "Volkswagen": {"Golf", "Passat"}}
	colors      = []string{"Red", "Blue", "Black", "White", "Silver"}
	technicians = []string{"Alex", "Sam", "Jordan", "Riley"}
	methods     = []string{"cash", "credit", "debit", "transfer"}
)

// Client talks to the garage API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(username, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(http.MethodPost, "/auth/login", body, http.StatusOK, &resp); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	c.Token = resp.Token
	return nil
}

func (c *Client) do(method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(data)
	}
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &statusError{Status: resp.StatusCode, Message: msg.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Message)
}

type created struct {
	ID string `json:"id"`
}

func (c *Client) create(path string, in any) (string, error) {
	var out created
	if err := c.do(http.MethodPost, path, in, http.StatusCreated, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("no id in %s response", path)
	}
	return out.ID, nil
}

// ensureServices creates the catalog, reusing entries that already exist.
func (c *Client) ensureServices() (map[string]string, error) {
	var existing []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.do(http.MethodGet, "/services", nil, http.StatusOK, &existing); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	ids := make(map[string]string, len(catalog))
	for _, s := range existing {
		ids[s.Name] = s.ID
	}

	for _, s := range catalog {
		if _, ok := ids[s.Name]; ok {
			continue
		}
		id, err := c.create("/services", s)
		if err != nil {
			return nil, fmt.Errorf("create service %q: %w", s.Name, err)
		}
		ids[s.Name] = id
		log.WithFields(log.Fields{"service_id": id, "name": s.Name}).Info("Created service")
	}
	return ids, nil
}

func randomCar(rng *rand.Rand) Car {
	brand := makes[rng.Intn(len(makes))]
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return Car{
		Make:         brand,
		Model:        models[brand][rng.Intn(len(models[brand]))],
		Year:         2012 + rng.Intn(13),
		LicensePlate: "SEED-" + suffix[:6],
		VIN:          "SEED" + suffix[:13],
		Color:        colors[rng.Intn(len(colors))],
		Mileage:      rng.Intn(200000),
	}
}

func randomRecord(rng *rand.Rand, carID string, service Service, serviceID string, now time.Time) ServiceRecord {
	start := now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour).Truncate(time.Minute)
	rec := ServiceRecord{
		CarID:      carID,
		ServiceID:  serviceID,
		StartDate:  start.UTC().Format(time.RFC3339),
		Status:     "in_progress",
		Cost:       service.BasePrice,
		Technician: technicians[rng.Intn(len(technicians))],
		PartsUsed:  partsByService[service.Name],
	}
	if rec.PartsUsed == nil {
		rec.PartsUsed = []Part{}
	}
	if rng.Intn(4) > 0 {
		rec.Status = "completed"
		rec.EndDate = start.Add(time.Duration(service.Duration) * time.Minute).UTC().Format(time.RFC3339)
	}
	return rec
}

// Seed creates cars, gives each a few service records and pays for the
// completed ones. It returns the number of records created.
func Seed(c *Client, cars int, rng *rand.Rand) (int, error) {
	serviceIDs, err := c.ensureServices()
	if err != nil {
		return 0, err
	}

	recordCount := 0
	for i := 0; i < cars; i++ {
		car := randomCar(rng)
		carID, err := c.create("/cars", car)
		if err != nil {
			log.WithError(err).WithField("vin", car.VIN).Error("Failed to create car")
			continue
		}
		log.WithFields(log.Fields{"car_id": carID, "make": car.Make, "model": car.Model}).Info("Created car")

		visits := 1 + rng.Intn(3)
		for j := 0; j < visits; j++ {
			service := catalog[rng.Intn(len(catalog))]
			rec := randomRecord(rng, carID, service, serviceIDs[service.Name], time.Now())
			recordID, err := c.create("/service-records", rec)
			if err != nil {
				log.WithError(err).WithField("car_id", carID).Error("Failed to create service record")
				continue
			}
			recordCount++

			if rec.Status != "completed" {
				continue
			}
			payment := Payment{
				ServiceRecordID: recordID,
				Amount:          rec.Cost,
				PaymentMethod:   methods[rng.Intn(len(methods))],
				Status:          "completed",
			}
			if _, err := c.create("/payments", payment); err != nil {
				log.WithError(err).WithField("service_record_id", recordID).Error("Failed to create payment")
			}
		}
	}
	return recordCount, nil
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8000/api"
	}

	cars := 10
	if val := os.Getenv("SEED_CARS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cars = n
		}
	}

	log.WithFields(log.Fields{"api_url": apiURL, "cars": cars}).Info("Starting seed")

	client := NewClient(apiURL)
	if err := client.Login(os.Getenv("SEED_USERNAME"), os.Getenv("SEED_PASSWORD")); err != nil {
		log.WithError(err).Fatal("Ensure SEED_USERNAME and SEED_PASSWORD name an admin or manager account")
	}

	records, err := Seed(client, cars, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		log.WithError(err).Fatal("Seed failed")
	}
	log.WithField("service_records", records).Info("Seed completed")
}

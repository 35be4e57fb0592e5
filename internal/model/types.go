package model

import "time"

// Fleet fixture entities as stored in the shared cache.

type LatLng struct {
    Lat float64 `json:"lat"`
    Lng float64 `json:"lng"`
}

// Facility is an origin or destination node. Utilization is derived from
// shipment routes and rewritten on every reset.
type Facility struct {
    ID          string  `json:"id"`
    Name        string  `json:"name"`
    Location    LatLng  `json:"location"`
    Capacity    float64 `json:"capacity"`
    Utilization float64 `json:"utilization"`
}

type Customer struct {
    Name     string `json:"name"`
    Password string `json:"password"`
}

type Operator struct {
    Name     string `json:"name"`
    Password string `json:"password"`
}

// Telemetry describes one sensor channel; it carries no reading.
type Telemetry struct {
    Unit     string  `json:"unit"`
    Max      float64 `json:"max"`
    Min      float64 `json:"min"`
    Label    string  `json:"label"`
    SensorID string  `json:"sensorId"`
}

type Vehicle struct {
    VIN         string      `json:"vin"`
    Type        string      `json:"type"`
    Origin      Facility    `json:"origin"`
    Destination Facility    `json:"destination"`
    ETA         time.Time   `json:"eta"`
    Status      string      `json:"status,omitempty"`
    Telemetry   []Telemetry `json:"telemetry"`
}

// Shipment is a package carried by a vehicle. Route is always
// [package origin, vehicle destination, package destination].
type Shipment struct {
    Customer    Customer    `json:"customer"`
    Name        string      `json:"name"`
    Description string      `json:"description"`
    SensorID    string      `json:"sensorId"`
    Route       []Facility  `json:"route"`
    ETD         time.Time   `json:"etd"`
    ETA         time.Time   `json:"eta"`
    Value       float64     `json:"value"`
    Vehicle     Vehicle     `json:"vehicle"`
    Status      string      `json:"status,omitempty"`
    Telemetry   []Telemetry `json:"telemetry"`
}

// Read models for API responses

type Summary struct {
    Name         string `json:"name"`
    Title        string `json:"title"`
    Count        int64  `json:"count"`
    WarningCount int64  `json:"warningCount"`
    ErrorCount   int64  `json:"errorCount"`
}


package pulsedb

import (
	"errors"
	"fmt"
)

var ErrUnknownDataset = errors.New("unknown dataset")

// Dataset names one of the three quarterly series the store tracks.
type Dataset string

const (
	DatasetUsers        Dataset = "users"
	DatasetTransactions Dataset = "transactions"
	DatasetInsurance    Dataset = "insurance"
)

// ParseDataset validates a dataset name.
func ParseDataset(name string) (Dataset, error) {
	switch d := Dataset(name); d {
	case DatasetUsers, DatasetTransactions, DatasetInsurance:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}

// TrendPoint is one (year, quarter) bucket of a dataset. For users, Count is
// registered users and Amount is app opens.
type TrendPoint struct {
	Year    int     `json:"year"`
	Quarter string  `json:"quarter"`
	Count   int64   `json:"count"`
	Amount  float64 `json:"amount"`
}

type StateUsers struct {
	State    string `json:"state"`
	Users    int64  `json:"users"`
	AppOpens int64  `json:"appOpens"`
}

type StateYearUsers struct {
	State    string `json:"state"`
	Year     int    `json:"year"`
	Users    int64  `json:"users"`
	AppOpens int64  `json:"appOpens"`
}

type DistrictUsers struct {
	State    string `json:"state"`
	District string `json:"district"`
	Users    int64  `json:"users"`
}

type PincodeUsers struct {
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Users   int64  `json:"users"`
}

type BrandTotal struct {
	Brand string `json:"brand"`
	Users int64  `json:"users"`
}

type BrandStateYear struct {
	State string `json:"state"`
	Year  int    `json:"year"`
	Users int64  `json:"users"`
}

// AppOpenRate joins a brand's users in a state and year with the app usage of
// the same state and year. Rate is nil when the brand has no users.
type AppOpenRate struct {
	State           string   `json:"state"`
	Year            int      `json:"year"`
	Brand           string   `json:"brand"`
	BrandUsers      int64    `json:"brandUsers"`
	RegisteredUsers int64    `json:"registeredUsers"`
	AppOpens        int64    `json:"appOpens"`
	Rate            *float64 `json:"rate"`
}

type DistrictLocation struct {
	State     string  `json:"state"`
	District  string  `json:"district"`
	Users     int64   `json:"users"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

type StateTransactions struct {
	State  string  `json:"state"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type TypeTransactions struct {
	State  string  `json:"state"`
	Type   string  `json:"type"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type DistrictTransactions struct {
	State    string  `json:"state"`
	District string  `json:"district"`
	Count    int64   `json:"count"`
	Amount   float64 `json:"amount"`
}

type PincodeTransactions struct {
	State   string  `json:"state"`
	Pincode string  `json:"pincode"`
	Count   int64   `json:"count"`
	Amount  float64 `json:"amount"`
}

// DistrictYear is the yearly transaction count of one district.
type DistrictYear struct {
	State    string `json:"state"`
	District string `json:"district"`
	Year     int    `json:"year"`
	Count    int64  `json:"count"`
}

// HierarchyLeaf is the finest state > district > year > quarter cell.
type HierarchyLeaf struct {
	State    string  `json:"state"`
	District string  `json:"district"`
	Year     int     `json:"year"`
	Quarter  string  `json:"quarter"`
	Count    int64   `json:"count"`
	Amount   float64 `json:"amount"`
}

type InsuranceStateYear struct {
	State string `json:"state"`
	Year  int    `json:"year"`
	Count int64  `json:"count"`
}

type InsuranceVolume struct {
	State  string `json:"state"`
	Volume int64  `json:"volume"`
}

type InsuranceLocation struct {
	State     string  `json:"state"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Metric    float64 `json:"metric"`
}

// Row types used to seed the store.

type AggregatedTransaction struct {
	State   string
	Year    int
	Quarter string
	Type    string
	Count   int64
	Amount  float64
}

type AggregatedUser struct {
	State      string
	Year       int
	Quarter    string
	Brand      string
	Count      int64
	Percentage float64
}

type AggregatedInsurance struct {
	State   string
	Year    int
	Quarter string
	Count   int64
	Amount  float64
}

// DistrictAmount is a district row of map_transaction, map_insurance or
// top_transaction_districtwise.
type DistrictAmount struct {
	State    string
	Year     int
	Quarter  string
	District string
	Count    int64
	Amount   float64
}

type PincodeAmount struct {
	State   string
	Year    int
	Quarter string
	Pincode string
	Count   int64
	Amount  float64
}

type MapUser struct {
	State           string
	Year            int
	Quarter         string
	District        string
	RegisteredUsers int64
	AppOpens        int64
}

type TopUserDistrict struct {
	State           string
	Year            int
	Quarter         string
	District        string
	RegisteredUsers int64
}

type TopUserPincode struct {
	State           string
	Year            int
	Quarter         string
	Pincode         string
	RegisteredUsers int64
}

type DistrictCoordinate struct {
	State     string
	District  string
	Latitude  float64
	Longitude float64
}

type StateMetric struct {
	State     string
	Latitude  float64
	Longitude float64
	Metric    float64
}

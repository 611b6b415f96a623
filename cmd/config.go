package cmd

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	ShipStationBaseURL   string
	ShipStationAPIKey    string
	ShipStationAPISecret string
	UPSBaseURL           string
	UPSClientID          string
	UPSClientSecret      string
	BatchFetchSchedule   string
	QueueDrainSchedule   string
}

// internal/model/settings.go
package model

// TransportSettings holds the SMTP submission credentials. All four of
// SenderEmail, Password, Host and Port must be set before a run may start.
type TransportSettings struct {
    SenderEmail string `json:"sender_email"`
    Password    string `json:"app_password"`
    Host        string `json:"smtp_host"`
    Port        string `json:"smtp_port"`
    UseTLS      bool   `json:"use_tls"`
}

// MissingFields returns the names of required fields that are empty.
func (s TransportSettings) MissingFields() []string {
    missing := []string{}
    if s.SenderEmail == "" {
        missing = append(missing, "sender_email")
    }
    if s.Password == "" {
        missing = append(missing, "app_password")
    }
    if s.Host == "" {
        missing = append(missing, "smtp_host")
    }
    if s.Port == "" {
        missing = append(missing, "smtp_port")
    }
    return missing
}

// IsComplete reports whether all required fields are present.
func (s TransportSettings) IsComplete() bool {
    return len(s.MissingFields()) == 0
}

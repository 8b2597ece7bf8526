// internal/settings/store.go
package settings

import (
    "crypto/rand"
    "encoding/json"
    "fmt"
    "os"

    "golang.org/x/crypto/chacha20poly1305"

    "github.com/unclebandit/automailer-backend/internal/model"
)

const (
    DefaultConfigFile = "config.secure"
    DefaultKeyFile    = "secret.key"
)

// Store persists TransportSettings encrypted on disk. The key is generated
// once on first save. A missing or undecryptable config file reads back as
// unconfigured settings, never as an error.
type Store struct {
    ConfigPath string
    KeyPath    string
}

func NewStore() *Store {
    return &Store{ConfigPath: DefaultConfigFile, KeyPath: DefaultKeyFile}
}

// Load returns the stored settings, or zero settings when nothing usable
// is on disk.
func (s *Store) Load() (model.TransportSettings, error) {
    var settings model.TransportSettings

    encrypted, err := os.ReadFile(s.ConfigPath)
    if err != nil {
        if os.IsNotExist(err) {
            return settings, nil
        }
        return settings, err
    }

    key, err := os.ReadFile(s.KeyPath)
    if err != nil {
        return model.TransportSettings{}, nil
    }

    aead, err := chacha20poly1305.NewX(key)
    if err != nil {
        return model.TransportSettings{}, nil
    }
    if len(encrypted) < aead.NonceSize() {
        return model.TransportSettings{}, nil
    }

    nonce := encrypted[:aead.NonceSize()]
    plaintext, err := aead.Open(nil, nonce, encrypted[aead.NonceSize():], nil)
    if err != nil {
        // tampered or re-keyed file, treat as unconfigured
        return model.TransportSettings{}, nil
    }

    if err := json.Unmarshal(plaintext, &settings); err != nil {
        return model.TransportSettings{}, nil
    }
    return settings, nil
}

// Save encrypts and writes the settings, generating the key on first use.
func (s *Store) Save(settings model.TransportSettings) error {
    key, err := s.loadOrCreateKey()
    if err != nil {
        return err
    }

    aead, err := chacha20poly1305.NewX(key)
    if err != nil {
        return err
    }

    plaintext, err := json.Marshal(settings)
    if err != nil {
        return err
    }

    nonce := make([]byte, aead.NonceSize())
    if _, err := rand.Read(nonce); err != nil {
        return err
    }

    encrypted := aead.Seal(nonce, nonce, plaintext, nil)
    return os.WriteFile(s.ConfigPath, encrypted, 0o600)
}

func (s *Store) loadOrCreateKey() ([]byte, error) {
    key, err := os.ReadFile(s.KeyPath)
    if err == nil {
        if len(key) != chacha20poly1305.KeySize {
            return nil, fmt.Errorf("key file %s is corrupted", s.KeyPath)
        }
        return key, nil
    }
    if !os.IsNotExist(err) {
        return nil, err
    }

    key = make([]byte, chacha20poly1305.KeySize)
    if _, err := rand.Read(key); err != nil {
        return nil, err
    }
    if err := os.WriteFile(s.KeyPath, key, 0o600); err != nil {
        return nil, err
    }
    return key, nil
}

// Source is the settings source handed to the run executor: the encrypted
// store first, with environment variables filling any gaps.
type Source struct {
    Store *Store
}

func (s Source) Load() (model.TransportSettings, error) {
    cfg, err := s.Store.Load()
    if err != nil {
        return cfg, err
    }
    return FromEnv(cfg), nil
}

// FromEnv fills any unset fields from environment variables so CLI and
// worker deployments can run without the settings file.
func FromEnv(settings model.TransportSettings) model.TransportSettings {
    if settings.SenderEmail == "" {
        settings.SenderEmail = os.Getenv("SENDER_EMAIL")
    }
    if settings.Password == "" {
        settings.Password = os.Getenv("SMTP_PASSWORD")
    }
    if settings.Host == "" {
        settings.Host = os.Getenv("SMTP_HOST")
    }
    if settings.Port == "" {
        settings.Port = os.Getenv("SMTP_PORT")
    }
    if os.Getenv("SMTP_TLS") == "true" {
        settings.UseTLS = true
    }
    return settings
}

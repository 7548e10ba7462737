package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// per-user token file (0600) with AES-GCM obfuscation.
// Not a replacement for OS keychains but avoids plain-text config.

const FileName = "tokens.json"

var ErrNotFound = errors.New("secrets: no token stored")

type secretFile struct {
	Tokens map[string]string `json:"tokens"` // endpoint host -> base64(ciphertext)
}

// Store keeps API tokens keyed by endpoint host.
type Store struct {
	path string
}

// Open returns the store backed by dir/tokens.json. Nothing is read until used.
func Open(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Set(endpoint, token string) error {
	host, err := hostKey(endpoint)
	if err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("secrets: empty token")
	}
	sf, err := s.load()
	if err != nil {
		return err
	}
	ct, err := encrypt([]byte(token))
	if err != nil {
		return err
	}
	sf.Tokens[host] = base64.StdEncoding.EncodeToString(ct)
	return s.save(sf)
}

func (s *Store) Get(endpoint string) (string, error) {
	host, err := hostKey(endpoint)
	if err != nil {
		return "", err
	}
	sf, err := s.load()
	if err != nil {
		return "", err
	}
	enc, ok := sf.Tokens[host]
	if !ok {
		return "", ErrNotFound
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("secrets: decode %s: %w", host, err)
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", fmt.Errorf("secrets: decrypt %s: %w", host, err)
	}
	return string(pt), nil
}

// Delete removes the token for endpoint. Deleting a missing token is not an error.
func (s *Store) Delete(endpoint string) error {
	host, err := hostKey(endpoint)
	if err != nil {
		return err
	}
	sf, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := sf.Tokens[host]; !ok {
		return nil
	}
	delete(sf.Tokens, host)
	return s.save(sf)
}

func hostKey(endpoint string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("secrets: endpoint %q has no host", endpoint)
	}
	return strings.ToLower(u.Host), nil
}

func (s *Store) load() (secretFile, error) {
	sf := secretFile{Tokens: map[string]string{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sf, nil
		}
		return sf, err
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("secrets: parse %s: %w", s.path, err)
	}
	if sf.Tokens == nil {
		sf.Tokens = map[string]string{}
	}
	return sf, nil
}

func (s *Store) save(sf secretFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func masterKey() []byte {
	base := fmt.Sprintf("pokedex-%s-%s", runtime.GOOS, os.Getenv("USER"))
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plain []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, body := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}

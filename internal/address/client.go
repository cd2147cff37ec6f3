package address

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const DefaultBaseURL = "https://viacep.com.br"

var (
	ErrInvalidCEP = errors.New("cep must have 8 digits")
	ErrIncomplete = errors.New("address is incomplete")
)

// Result ответ сервиса CEP
type Result struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

type response struct {
	Result
	// сервис отдаёт "erro": true или "erro": "true"
	Error any `json:"erro,omitempty"`
}

// Client клиент ViaCEP-совместимого сервиса
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// NormalizeCEP оставляет только цифры 0-9
func NormalizeCEP(cep string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cep)
}

// Lookup nil, если сервис не знает такой CEP
func (c *Client) Lookup(ctx context.Context, cep string) (*Result, error) {
	clean := NormalizeCEP(cep)
	if len(clean) != 8 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCEP, cep)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/ws/%s/json/", c.baseURL, clean), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep lookup: %w", err)
	}
	defer resp.Body.Close()

	// ViaCEP answers 400 for malformed codes
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cep lookup: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("cep lookup: read body: %w", err)
	}
	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("cep lookup: decode: %w", err)
	}
	if isErr(out.Error) {
		return nil, nil
	}
	return &out.Result, nil
}

func isErr(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}

// Parts поля адреса, из которых собирается строка доставки.
// Обязательность полей проверяет FormatAddress.
type Parts struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	CEP          string `json:"cep"`
}

// FormatAddress "rua, número - bairro, cidade - UF, cep"
func FormatAddress(p Parts) (string, error) {
	fields := []string{p.Street, p.Number, p.Neighborhood, p.City, p.State, p.CEP}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return "", ErrIncomplete
		}
	}
	cep := NormalizeCEP(p.CEP)
	if len(cep) != 8 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCEP, p.CEP)
	}
	number := strings.TrimSpace(p.Number)
	if c := strings.TrimSpace(p.Complement); c != "" {
		number += " " + c
	}
	return fmt.Sprintf("%s, %s - %s, %s - %s, %s",
		strings.TrimSpace(p.Street), number, strings.TrimSpace(p.Neighborhood),
		strings.TrimSpace(p.City), strings.ToUpper(strings.TrimSpace(p.State)), cep), nil
}

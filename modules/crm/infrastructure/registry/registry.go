package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/ledgerflow/practice-sdk/pkg/configuration"
)

var (
	ErrCompanyNotFound = errors.New("company not found in registry")
	ErrUnauthorized    = errors.New("registry rejected the API key")
)

// CompanyProfile is the subset of the public register used for enrichment.
type CompanyProfile struct {
	CompanyNumber     string
	CompanyName       string
	Status            string
	IncorporatedAt    *time.Time
	RegisteredAddress string
}

// CompanyRegistry looks up company details on the public register.
type CompanyRegistry interface {
	Lookup(ctx context.Context, companyNumber string) (CompanyProfile, error)
}

type HTTPRegistry struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPRegistry(opts configuration.RegistryOptions) *HTTPRegistry {
	return &HTTPRegistry{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		client:  &http.Client{Timeout: opts.Timeout},
	}
}

// companyResponse mirrors the register's company profile resource.
type companyResponse struct {
	CompanyName    string `json:"company_name"`
	CompanyNumber  string `json:"company_number"`
	CompanyStatus  string `json:"company_status"`
	DateOfCreation string `json:"date_of_creation"`

	RegisteredOfficeAddress struct {
		AddressLine1 string `json:"address_line_1"`
		AddressLine2 string `json:"address_line_2"`
		Locality     string `json:"locality"`
		PostalCode   string `json:"postal_code"`
	} `json:"registered_office_address"`
}

func (r *HTTPRegistry) Lookup(ctx context.Context, companyNumber string) (CompanyProfile, error) {
	url := fmt.Sprintf("%s/company/%s", r.baseURL, companyNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return CompanyProfile{}, errors.Wrap(err, "failed to build registry request")
	}
	// The register authenticates with the API key as a basic-auth username.
	req.SetBasicAuth(r.apiKey, "")

	resp, err := r.client.Do(req)
	if err != nil {
		return CompanyProfile{}, errors.Wrap(err, "registry request failed")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return CompanyProfile{}, ErrCompanyNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return CompanyProfile{}, ErrUnauthorized
	default:
		return CompanyProfile{}, errors.Errorf("registry returned status %d", resp.StatusCode)
	}

	var body companyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return CompanyProfile{}, errors.Wrap(err, "failed to decode registry response")
	}
	return body.toProfile(), nil
}

func (c companyResponse) toProfile() CompanyProfile {
	profile := CompanyProfile{
		CompanyNumber:     c.CompanyNumber,
		CompanyName:       c.CompanyName,
		Status:            c.CompanyStatus,
		RegisteredAddress: joinAddress(c.RegisteredOfficeAddress.AddressLine1, c.RegisteredOfficeAddress.AddressLine2, c.RegisteredOfficeAddress.Locality, c.RegisteredOfficeAddress.PostalCode),
	}
	if t, err := time.Parse("2006-01-02", c.DateOfCreation); err == nil {
		profile.IncorporatedAt = &t
	}
	return profile
}

func joinAddress(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

package synth

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"dukacore/pkg/domain"
)

// Estate lists per county. Counties without an entry fall back to
// defaultLocalities.
var DefaultCountyEstates = map[string][]string{
	"Nairobi":     {"Kileleshwa", "Karen", "Umoja", "Embakasi", "South B", "Lavington", "Rongai"},
	"Mombasa":     {"Kizingo", "Nyali", "Likoni", "Shanzu", "Bamburi"},
	"Kisumu":      {"Nyalenda", "Milimani", "Manyatta", "Nyamasaria"},
	"Nakuru":      {"Section 58", "Kiamunyi", "Naka", "Barut"},
	"Kiambu":      {"Ruiru", "Thika Road", "Kahawa Sukari", "Githurai"},
	"Machakos":    {"Kalulini", "Mlolongo", "Syokimau", "Athi River"},
	"Kajiado":     {"Kitengela", "Ongata Rongai", "Ngong", "Isinya"},
	"Uasin Gishu": {"Elgon View", "Kapseret", "Pioneer"},
	"Kericho":     {"Kapsoit", "Ainamoi", "Kipkelion"},
}

var defaultLocalities = []string{"CBD", "Main Street", "Market Area"}

// Kenyan postal codes, one per major region.
var postalCodes = []string{
	"00100", "20100", "40100", "80100", "30100",
	"90100", "70100", "50100", "60100",
}

var phonePrefixes = []string{"07", "01"}

// CustomerConfig bounds customer generation.
type CustomerConfig struct {
	Count       int
	EmailDomain string              // defaults to example.com
	Estates     map[string][]string // county localities; nil means DefaultCountyEstates
}

// CustomerSynthesizer emits a fixed-size customer batch with dense ids 1..N.
// Names come from the injected region-conditioned provider.
type CustomerSynthesizer struct {
	cfg      CustomerConfig
	counties []string
	names    domain.NameProvider
	rng      *rand.Rand
	now      func() time.Time
}

// NewCustomerSynthesizer validates cfg and wires the name provider. counties
// is the region key set customers are drawn from; every key must be resolvable
// by the provider at generation time.
func NewCustomerSynthesizer(cfg CustomerConfig, counties []string, names domain.NameProvider, rng *rand.Rand) (*CustomerSynthesizer, error) {
	if cfg.Count <= 0 {
		return nil, domain.ConfigError{Field: "customer count", Reason: "must be positive"}
	}
	if len(counties) == 0 {
		return nil, domain.ConfigError{Field: "counties", Reason: "empty region set"}
	}
	if names == nil {
		return nil, domain.ConfigError{Field: "name provider", Reason: "required"}
	}
	if cfg.EmailDomain == "" {
		cfg.EmailDomain = "example.com"
	}
	if cfg.Estates == nil {
		cfg.Estates = DefaultCountyEstates
	}
	ordered := append([]string(nil), counties...)
	sort.Strings(ordered)
	return &CustomerSynthesizer{
		cfg:      cfg,
		counties: ordered,
		names:    names,
		rng:      rng,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock overrides the created_at clock.
func (s *CustomerSynthesizer) WithClock(now func() time.Time) *CustomerSynthesizer {
	s.now = now
	return s
}

// Generate produces the configured number of customers. An unknown county
// aborts the batch; there is no silent default name.
func (s *CustomerSynthesizer) Generate() ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0, s.cfg.Count)
	for id := 1; id <= s.cfg.Count; id++ {
		county := s.counties[s.rng.Intn(len(s.counties))]
		person, err := s.names.NameForRegion(county)
		if err != nil {
			return nil, fmt.Errorf("customer %d: %w", id, err)
		}

		estates := s.cfg.Estates[county]
		if len(estates) == 0 {
			estates = defaultLocalities
		}
		estate := estates[s.rng.Intn(len(estates))]

		// Email embeds the dense id, so uniqueness holds by construction.
		email := fmt.Sprintf("%s.%s%d@%s",
			emailToken(person.FirstName), emailToken(person.LastName), id, s.cfg.EmailDomain)

		customers = append(customers, domain.Customer{
			ID:           id,
			FirstName:    person.FirstName,
			LastName:     person.LastName,
			Email:        email,
			Phone:        s.randomPhone(),
			AddressLine1: fmt.Sprintf("%s, %s", estate, county),
			AddressLine2: fmt.Sprintf("P.O. Box %d-%s, %s", 100+s.rng.Intn(9900), postalCodes[s.rng.Intn(len(postalCodes))], county),
			City:         county,
			Country:      "Kenya",
			CreatedAt:    s.now(),
		})
	}
	return customers, nil
}

// emailToken lowercases a name part and drops the characters that do not
// belong in an address, so "Ole Sane" becomes "olesane".
func emailToken(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\'', '-':
			return -1
		}
		return r
	}, strings.ToLower(name))
}

// randomPhone builds a Kenyan mobile number: "07" or "01" plus eight digits.
func (s *CustomerSynthesizer) randomPhone() string {
	var b strings.Builder
	b.WriteString(phonePrefixes[s.rng.Intn(len(phonePrefixes))])
	for i := 0; i < 8; i++ {
		b.WriteByte(byte('0' + s.rng.Intn(10)))
	}
	return b.String()
}

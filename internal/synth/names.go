package synth

import (
	"math/rand"
	"sort"

	"dukacore/pkg/domain"
)

// NamePool holds the first/last name candidates for one county.
type NamePool struct {
	First []string
	Last  []string
}

// CountyNameProvider implements domain.NameProvider from an explicit
// county to name-pool lookup table. The table is injected at construction so
// tests can substitute deterministic fixtures.
type CountyNameProvider struct {
	pools map[string]NamePool
	rng   *rand.Rand
}

// Compile-time contract assertion.
var _ domain.NameProvider = (*CountyNameProvider)(nil)

// NewCountyNameProvider returns a provider drawing names from pools using rng.
func NewCountyNameProvider(pools map[string]NamePool, rng *rand.Rand) (*CountyNameProvider, error) {
	if len(pools) == 0 {
		return nil, domain.ConfigError{Field: "name pools", Reason: "empty county table"}
	}
	for county, pool := range pools {
		if len(pool.First) == 0 || len(pool.Last) == 0 {
			return nil, domain.ConfigError{Field: "name pools", Reason: "empty pool for county " + county}
		}
	}
	return &CountyNameProvider{pools: pools, rng: rng}, nil
}

// NameForRegion returns a plausible name pair for the county, or
// ErrUnknownRegion when the county has no configured pool.
func (p *CountyNameProvider) NameForRegion(county string) (domain.PersonName, error) {
	pool, ok := p.pools[county]
	if !ok {
		return domain.PersonName{}, domain.ErrUnknownRegion{Region: county}
	}
	return domain.PersonName{
		FirstName: pool.First[p.rng.Intn(len(pool.First))],
		LastName:  pool.Last[p.rng.Intn(len(pool.Last))],
	}, nil
}

// Counties returns the configured county keys in sorted order.
func (p *CountyNameProvider) Counties() []string {
	keys := make([]string, 0, len(p.pools))
	for county := range p.pools {
		keys = append(keys, county)
	}
	sort.Strings(keys)
	return keys
}

// DefaultCountyNames maps each supported county to names common in its
// dominant communities.
var DefaultCountyNames = map[string]NamePool{
	"Nairobi": {
		First: []string{"Brian", "Faith", "Kevin", "Mercy", "Dennis", "Joyce", "Samuel", "Esther"},
		Last:  []string{"Mwangi", "Otieno", "Wanjiru", "Kamau", "Achieng", "Njoroge", "Odhiambo", "Muthoni"},
	},
	"Mombasa": {
		First: []string{"Ali", "Amina", "Salim", "Fatuma", "Hassan", "Zainab", "Omar", "Mariam"},
		Last:  []string{"Mohamed", "Abdalla", "Salim", "Mwinyi", "Bakari", "Said", "Juma", "Athman"},
	},
	"Kisumu": {
		First: []string{"Otieno", "Akinyi", "Odhiambo", "Atieno", "Owino", "Adhiambo", "Okoth", "Awino"},
		Last:  []string{"Ochieng", "Onyango", "Omondi", "Okello", "Ouma", "Oduya", "Were", "Awuor"},
	},
	"Nakuru": {
		First: []string{"Kiprop", "Chebet", "Kibet", "Cherono", "Kiprotich", "Jepkorir", "Kimutai", "Chepkemoi"},
		Last:  []string{"Langat", "Koech", "Rotich", "Kirui", "Cheruiyot", "Sang", "Bett", "Mutai"},
	},
	"Kiambu": {
		First: []string{"Njoroge", "Wanjiku", "Kamau", "Nyambura", "Mwangi", "Wairimu", "Karanja", "Njeri"},
		Last:  []string{"Kariuki", "Ndungu", "Gitau", "Waweru", "Maina", "Kimani", "Githinji", "Macharia"},
	},
	"Machakos": {
		First: []string{"Mutua", "Mwende", "Musyoka", "Ndanu", "Kioko", "Mumbua", "Muema", "Syombua"},
		Last:  []string{"Mutiso", "Musyimi", "Nzioka", "Muli", "Kilonzo", "Mwangangi", "Ndolo", "Kyalo"},
	},
	"Kajiado": {
		First: []string{"Lemayian", "Naserian", "Saitoti", "Nashipae", "Sankale", "Sialo", "Lekishon", "Namunyak"},
		Last:  []string{"Ole Sane", "Ole Kina", "Ole Ntutu", "Ole Musei", "Ole Tipis", "Sironka", "Koikai", "Parsitau"},
	},
	"Uasin Gishu": {
		First: []string{"Kipchoge", "Jepchirchir", "Kiptoo", "Chepngetich", "Kigen", "Jebet", "Korir", "Chelangat"},
		Last:  []string{"Tanui", "Kosgei", "Biwott", "Chumba", "Kandie", "Saina", "Birir", "Tergat"},
	},
	"Kericho": {
		First: []string{"Kipkorir", "Chepkoech", "Kiplangat", "Chelagat", "Towett", "Cherotich", "Ngeno", "Chepkirui"},
		Last:  []string{"Soi", "Kilel", "Ruto", "Chirchir", "Maritim", "Siele", "Bor", "Tonui"},
	},
}

package seeder

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// DefaultLocale is used when a store carries no locale configuration
const DefaultLocale = "en_US"

var safeEmailDomains = []string{"example.com", "example.org", "example.net"}

// Faker is a locale-aware wrapper around gofakeit. Locale awareness
// covers the formats gofakeit has no notion of: postcodes, phone
// numbers and tax numbers are keyed by locale or country. Emails are
// unique within the Faker's lifetime.
type Faker struct {
	fk     *gofakeit.Faker
	locale string

	mu         sync.Mutex
	usedEmails map[string]struct{}
}

// NewFaker creates a faker for a locale. A zero seed picks a random
// seed; a fixed seed makes the data stream reproducible.
func NewFaker(seed uint64, locale string) *Faker {
	if locale == "" {
		locale = DefaultLocale
	}
	return &Faker{
		fk:         gofakeit.New(seed),
		locale:     locale,
		usedEmails: make(map[string]struct{}),
	}
}

// Locale returns the faker's locale code
func (f *Faker) Locale() string {
	return f.locale
}

// CountryID returns the ISO country code derived from the locale
func (f *Faker) CountryID() string {
	parts := strings.Split(f.locale, "_")
	return strings.ToUpper(parts[len(parts)-1])
}

func (f *Faker) FirstName() string  { return f.fk.FirstName() }
func (f *Faker) LastName() string   { return f.fk.LastName() }
func (f *Faker) MiddleName() string { return f.fk.MiddleName() }
func (f *Faker) NamePrefix() string { return f.fk.NamePrefix() }
func (f *Faker) NameSuffix() string { return f.fk.NameSuffix() }
func (f *Faker) Company() string    { return f.fk.Company() }
func (f *Faker) City() string       { return f.fk.City() }
func (f *Faker) Region() string     { return f.fk.State() }
func (f *Faker) Username() string   { return strings.ToLower(f.fk.Username()) }

// StreetAddress returns a street line; SecondaryAddress a unit suffix
func (f *Faker) StreetAddress() string {
	return f.fk.Street()
}

func (f *Faker) SecondaryAddress() string {
	return "Apt. " + f.fk.DigitN(uint(f.fk.Number(1, 3)))
}

// UniqueEmail returns an email on one of the reserved example domains,
// unique for the lifetime of this faker.
func (f *Faker) UniqueEmail() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		local := strings.ToLower(f.fk.Username())
		domain := safeEmailDomains[f.fk.Number(0, len(safeEmailDomains)-1)]
		email := local + "@" + domain
		if _, taken := f.usedEmails[email]; taken {
			email = fmt.Sprintf("%s.%s@%s", local, f.fk.DigitN(4), domain)
			if _, taken := f.usedEmails[email]; taken {
				continue
			}
		}
		f.usedEmails[email] = struct{}{}
		return email
	}
}

// DateOfBirth returns a YYYY-MM-DD date implying an age in [minAge, maxAge]
func (f *Faker) DateOfBirth(minAge, maxAge int) string {
	now := time.Now()
	end := now.AddDate(-minAge, 0, 0)
	start := now.AddDate(-maxAge, 0, 0)
	return f.fk.DateRange(start, end).Format("2006-01-02")
}

// Password synthesizes a password satisfying typical complexity rules:
// a capitalized 10-letter core, three digits, one symbol.
func (f *Faker) Password() string {
	letters := strings.ToLower(f.fk.LetterN(10))
	core := strings.ToUpper(letters[:1]) + letters[1:]
	symbols := []string{"!", "@", "#", "$", "%", "&", "*"}
	return core + f.fk.DigitN(3) + symbols[f.fk.Number(0, len(symbols)-1)]
}

// postcodeFormats maps country codes to numeric postcode patterns.
// GB and CA need letters and are handled separately.
var postcodeFormats = map[string]string{
	"US": "#####",
	"DE": "#####",
	"FR": "#####",
	"AU": "####",
	"JP": "###-####",
}

// Postcode returns a postcode valid in shape for the given country
func (f *Faker) Postcode(countryID string) string {
	switch countryID {
	case "GB":
		areas := []string{"SW", "SE", "NW", "NE", "W", "E", "N", "EC", "WC"}
		area := areas[f.fk.Number(0, len(areas)-1)]
		return fmt.Sprintf("%s%d %d%s", area, f.fk.Number(1, 20), f.fk.Number(1, 9), f.fk.LetterN(2))
	case "CA":
		up := func() string { return strings.ToUpper(f.fk.LetterN(1)) }
		return fmt.Sprintf("%s%d%s %d%s%d", up(), f.fk.Number(0, 9), up(), f.fk.Number(0, 9), up(), f.fk.Number(0, 9))
	}
	if format, ok := postcodeFormats[countryID]; ok {
		return f.fk.Numerify(format)
	}
	return f.fk.Zip()
}

// phoneFormats maps locales to phone number patterns
var phoneFormats = map[string][]string{
	"en_US": {"###-###-####", "(###) ###-####", "### ### ####", "+1 ### ### ####"},
	"en_GB": {"#### ######", "#####-######", "+44 #### ######", "0#### ######"},
	"de_DE": {"#### #######", "####-#######", "+49 #### #######", "0#### #######"},
	"fr_FR": {"## ## ## ## ##", "+33 # ## ## ## ##", "0# ## ## ## ##"},
}

var defaultPhoneFormats = []string{"+# ### ### ####", "### ### ####"}

// Phone returns a phone number shaped for the faker's locale
func (f *Faker) Phone() string {
	formats, ok := phoneFormats[f.locale]
	if !ok {
		formats = defaultPhoneFormats
	}
	return f.fk.Numerify(formats[f.fk.Number(0, len(formats)-1)])
}

// taxFormats maps locales to VAT/EIN number patterns
var taxFormats = map[string]string{
	"de_DE": "DE#########",
	"fr_FR": "FR##########",
	"it_IT": "IT###########",
	"es_ES": "ES#########",
	"nl_NL": "NL#########B##",
}

// TaxNumber returns a VAT number for the locale, or a US EIN by default
func (f *Faker) TaxNumber() string {
	format, ok := taxFormats[f.locale]
	if !ok {
		format = "##-#######"
	}
	return f.fk.Numerify(format)
}

// fakerPool hands out one faker per locale for the lifetime of a
// generator, so email uniqueness holds across a whole session.
type fakerPool struct {
	seed uint64

	mu     sync.Mutex
	fakers map[string]*Faker
}

func newFakerPool() *fakerPool {
	return &fakerPool{fakers: make(map[string]*Faker)}
}

// SetSeed fixes the seed for fakers created afterwards
func (p *fakerPool) SetSeed(seed uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seed = seed
}

// For returns the session faker for a locale, creating it on first use
func (p *fakerPool) For(locale string) *Faker {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f, ok := p.fakers[locale]; ok {
		return f
	}
	f := NewFaker(p.seed, locale)
	p.fakers[locale] = f
	return f
}

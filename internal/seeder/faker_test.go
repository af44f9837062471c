package seeder

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaker_CountryID(t *testing.T) {
	tests := []struct {
		locale  string
		country string
	}{
		{"en_US", "US"},
		{"de_DE", "DE"},
		{"en_GB", "GB"},
		{"fr_FR", "FR"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			f := NewFaker(1, tt.locale)
			assert.Equal(t, tt.country, f.CountryID())
		})
	}
}

func TestFaker_DefaultLocale(t *testing.T) {
	f := NewFaker(1, "")
	assert.Equal(t, DefaultLocale, f.Locale())
}

func TestFaker_Postcode(t *testing.T) {
	tests := []struct {
		country string
		pattern string
	}{
		{"US", `^\d{5}$`},
		{"DE", `^\d{5}$`},
		{"FR", `^\d{5}$`},
		{"AU", `^\d{4}$`},
		{"JP", `^\d{3}-\d{4}$`},
		{"GB", `^[A-Z]{1,2}\d{1,2} \d[A-Za-z]{2}$`},
		{"CA", `^[A-Z]\d[A-Z] \d[A-Z]\d$`},
	}

	f := NewFaker(7, "en_US")
	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			re := regexp.MustCompile(tt.pattern)
			for i := 0; i < 20; i++ {
				code := f.Postcode(tt.country)
				assert.Regexp(t, re, code)
			}
		})
	}
}

func TestFaker_Phone(t *testing.T) {
	for _, locale := range []string{"en_US", "en_GB", "de_DE", "fr_FR", "nl_NL"} {
		t.Run(locale, func(t *testing.T) {
			f := NewFaker(7, locale)
			for i := 0; i < 10; i++ {
				phone := f.Phone()
				assert.NotEmpty(t, phone)
				assert.NotContains(t, phone, "#", "all placeholders must be filled")
			}
		})
	}
}

func TestFaker_TaxNumber(t *testing.T) {
	tests := []struct {
		locale  string
		pattern string
	}{
		{"de_DE", `^DE\d{9}$`},
		{"fr_FR", `^FR\d{10}$`},
		{"it_IT", `^IT\d{11}$`},
		{"es_ES", `^ES\d{9}$`},
		{"nl_NL", `^NL\d{9}B\d{2}$`},
		{"en_US", `^\d{2}-\d{7}$`},
		{"pt_BR", `^\d{2}-\d{7}$`},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			f := NewFaker(7, tt.locale)
			assert.Regexp(t, regexp.MustCompile(tt.pattern), f.TaxNumber())
		})
	}
}

func TestFaker_Password(t *testing.T) {
	f := NewFaker(7, "en_US")
	shape := regexp.MustCompile(`^[A-Z][a-z]{9}\d{3}[!@#$%&*]$`)

	for i := 0; i < 50; i++ {
		password := f.Password()
		assert.Len(t, password, 14)
		assert.Regexp(t, shape, password)
	}
}

func TestFaker_DateOfBirth(t *testing.T) {
	f := NewFaker(7, "en_US")
	now := time.Now()

	for i := 0; i < 50; i++ {
		raw := f.DateOfBirth(18, 65)
		dob, err := time.Parse("2006-01-02", raw)
		require.NoError(t, err)

		age := ageInYears(dob, now)
		assert.GreaterOrEqual(t, age, 18)
		assert.LessOrEqual(t, age, 65)
	}
}

func TestFaker_UniqueEmail(t *testing.T) {
	f := NewFaker(7, "en_US")
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		email := f.UniqueEmail()
		assert.False(t, seen[email], "email %s issued twice", email)
		seen[email] = true

		_, domain, found := strings.Cut(email, "@")
		require.True(t, found)
		assert.Contains(t, safeEmailDomains, domain)
	}
}

func TestFakerPool_SharesFakerPerLocale(t *testing.T) {
	pool := newFakerPool()

	first := pool.For("en_US")
	second := pool.For("en_US")
	other := pool.For("de_DE")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestFakerPool_SeededReproducibility(t *testing.T) {
	left := newFakerPool()
	left.SetSeed(1234)
	right := newFakerPool()
	right.SetSeed(1234)

	for i := 0; i < 20; i++ {
		assert.Equal(t, left.For("en_US").UniqueEmail(), right.For("en_US").UniqueEmail())
	}
}

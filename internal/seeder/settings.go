package seeder

// Settings is the read-only configuration surface of the generators,
// resolved once from the application config and threaded into every
// generation call.
type Settings struct {
	Enabled        bool
	AllowedLocales []string

	DefaultEmailDomain string
	EmailPrefix        string
	NamePrefix         string
	SurnamePrefix      string
	AddressPrefix      string

	AllowedPaymentMethods  []string
	AllowedShippingMethods []string

	// Percentages in [0,100] for post-order side effects
	InvoiceChance    int
	ShipmentChance   int
	CreditmemoChance int

	// StrictMethodResolution controls the terminal behavior of the
	// shipping fallback chain: true fails the order attempt, false
	// forces the flat-rate code regardless of availability.
	StrictMethodResolution bool
}

// DefaultSettings returns the settings used when no configuration is loaded
func DefaultSettings() Settings {
	return Settings{
		Enabled:                true,
		AllowedLocales:         []string{DefaultLocale},
		DefaultEmailDomain:     "example.com",
		InvoiceChance:          70,
		ShipmentChance:         50,
		CreditmemoChance:       10,
		StrictMethodResolution: true,
	}
}

// LocaleAllowed reports whether the locale may be used for generation.
// An empty allow-list permits every locale.
func (s Settings) LocaleAllowed(locale string) bool {
	if len(s.AllowedLocales) == 0 {
		return true
	}
	for _, allowed := range s.AllowedLocales {
		if allowed == locale {
			return true
		}
	}
	return false
}

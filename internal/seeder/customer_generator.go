package seeder

import (
	"context"
	"fmt"
	"strings"

	"github.com/erp/seeder/internal/domain/customer"
	"github.com/erp/seeder/internal/domain/shared"
	"github.com/erp/seeder/internal/domain/store"
	"go.uber.org/zap"
)

// Optional-field population rates, fixed policy constants
const (
	middleNameChance = 30
	prefixChance     = 20
	suffixChance     = 10
	dobChance        = 40
	genderChance     = 60
	taxNumberChance  = 15
)

// Age window for generated dates of birth
const (
	dobMinAge = 18
	dobMaxAge = 65
)

const emailRetryAttempts = 3

// CustomerGenerator builds randomized customer profiles, validates
// them and registers accounts through the platform account service.
type CustomerGenerator struct {
	stores    store.Manager
	customers customer.Repository
	addresses customer.AddressRepository
	groups    customer.GroupRepository
	accounts  customer.AccountService
	validator *CustomerValidator
	settings  Settings
	chance    *ChanceSource
	logger    *zap.Logger
	fakers    *fakerPool
}

// NewCustomerGenerator creates a new CustomerGenerator
func NewCustomerGenerator(
	stores store.Manager,
	customers customer.Repository,
	addresses customer.AddressRepository,
	groups customer.GroupRepository,
	accounts customer.AccountService,
	settings Settings,
	chance *ChanceSource,
	logger *zap.Logger,
) *CustomerGenerator {
	return &CustomerGenerator{
		stores:    stores,
		customers: customers,
		addresses: addresses,
		groups:    groups,
		accounts:  accounts,
		validator: NewCustomerValidator(),
		settings:  settings,
		chance:    chance,
		logger:    logger,
		fakers:    newFakerPool(),
	}
}

// SetFakerSeed fixes the faker seed for reproducible runs. Must be
// called before the first generation.
func (g *CustomerGenerator) SetFakerSeed(seed uint64) {
	g.fakers.SetSeed(seed)
}

// Generate runs a customer generation batch. Precondition failures
// (disabled module, unknown store, disallowed locale) return an error
// before any entity is created; per-customer failures are recorded in
// the result and the batch continues.
func (g *CustomerGenerator) Generate(ctx context.Context, cfg CustomerRunConfig) (*Result, error) {
	cfg.Normalize()

	if !g.settings.Enabled {
		return nil, shared.NewDomainError("MODULE_DISABLED", "Entity generation is disabled by configuration")
	}

	st, website, err := g.resolveScope(ctx, cfg)
	if err != nil {
		return nil, err
	}

	locale := cfg.Locale
	if locale == "" {
		locale = st.Locale
	}
	if !g.settings.LocaleAllowed(locale) {
		return nil, shared.NewDomainError("INVALID_LOCALE",
			fmt.Sprintf("Locale %s is not allowed for generation", locale))
	}

	g.logger.Info("starting customer generation",
		zap.Int("count", cfg.Count),
		zap.String("store", st.Code),
		zap.String("locale", locale),
	)

	result := NewResult("customer")
	var refs []EntityRef

	for i := 0; i < cfg.Count; i++ {
		created, err := g.generateCustomer(ctx, st, website, locale, cfg, result)
		if err != nil {
			g.logger.Error("failed to generate customer", zap.Error(err))
			result.AddError(fmt.Sprintf("Customer %d: %s", i+1, err.Error()))
			continue
		}
		refs = append(refs, EntityRef{ID: created.ID, Email: created.Email})
	}

	result.Success = len(refs) > 0
	result.SetMeta(MetaTotalRequested, cfg.Count)
	result.SetMeta(MetaTotalGenerated, len(refs))
	result.SetMeta(MetaTotalFailed, len(result.Errors))
	result.SetMeta(MetaCustomers, refs)
	return result, nil
}

// GenerateOne creates exactly one customer and returns the entity.
// Used by the order generator to back orders with fresh customers.
func (g *CustomerGenerator) GenerateOne(ctx context.Context, cfg CustomerRunConfig) (*customer.Customer, error) {
	cfg.Count = 1
	cfg.Normalize()

	if !g.settings.Enabled {
		return nil, shared.NewDomainError("MODULE_DISABLED", "Entity generation is disabled by configuration")
	}

	st, website, err := g.resolveScope(ctx, cfg)
	if err != nil {
		return nil, err
	}

	locale := cfg.Locale
	if locale == "" {
		locale = st.Locale
	}
	if !g.settings.LocaleAllowed(locale) {
		return nil, shared.NewDomainError("INVALID_LOCALE",
			fmt.Sprintf("Locale %s is not allowed for generation", locale))
	}

	return g.generateCustomer(ctx, st, website, locale, cfg, NewResult("customer"))
}

// resolveScope determines the target store and website for generation
func (g *CustomerGenerator) resolveScope(ctx context.Context, cfg CustomerRunConfig) (*store.Store, *store.Website, error) {
	var st *store.Store
	var err error
	if cfg.StoreCode != "" {
		st, err = g.stores.FindByCode(ctx, cfg.StoreCode)
	} else {
		st, err = g.stores.DefaultStore(ctx)
	}
	if err != nil {
		return nil, nil, err
	}

	var website *store.Website
	if cfg.WebsiteCode != "" {
		website, err = g.stores.FindWebsiteByCode(ctx, cfg.WebsiteCode)
	} else {
		website, err = g.stores.FindWebsiteByID(ctx, st.WebsiteID)
	}
	if err != nil {
		return nil, nil, err
	}
	return st, website, nil
}

func (g *CustomerGenerator) generateCustomer(
	ctx context.Context,
	st *store.Store,
	website *store.Website,
	locale string,
	cfg CustomerRunConfig,
	result *Result,
) (*customer.Customer, error) {
	faker := g.fakers.For(locale)
	overrides := cfg.Overrides

	email, err := g.pickEmail(ctx, website, faker, overrides)
	if err != nil {
		return nil, err
	}

	firstName := faker.FirstName()
	if overrides.FirstName != nil {
		firstName = *overrides.FirstName
	}
	lastName := faker.LastName()
	if overrides.LastName != nil {
		lastName = *overrides.LastName
	}

	c, err := customer.NewCustomer(website.ID, st.ID, email, firstName, lastName)
	if err != nil {
		return nil, err
	}

	g.populateOptionalFields(c, faker)
	if err := g.applyOverrides(ctx, c, overrides); err != nil {
		return nil, err
	}

	if errs := g.validator.Validate(c); len(errs) > 0 {
		return nil, shared.NewDomainError("VALIDATION_FAILED",
			fmt.Sprintf("Customer validation failed: %s", strings.Join(errs, ", ")))
	}

	password := faker.Password()
	if overrides.Password != nil {
		password = *overrides.Password
	}

	c, err = g.accounts.CreateAccount(ctx, c, password)
	if err != nil {
		return nil, err
	}

	g.logger.Info("generated customer",
		zap.String("customer_id", c.ID.String()),
		zap.String("email", c.Email),
		zap.String("store", st.Code),
	)

	if cfg.WithAddresses {
		g.attachAddresses(ctx, c, faker, cfg.AddressCount, result)
	}

	return c, nil
}

// pickEmail returns an override email (rejected when taken) or a
// session-unique generated one, re-drawn when a previous run already
// persisted it.
func (g *CustomerGenerator) pickEmail(ctx context.Context, website *store.Website, faker *Faker, overrides *CustomerOverrides) (string, error) {
	if overrides.Email != nil {
		exists, err := g.customers.ExistsByEmail(ctx, website.ID, *overrides.Email)
		if err != nil {
			return "", err
		}
		if exists {
			return "", shared.NewDomainError("EMAIL_TAKEN",
				fmt.Sprintf("Customer with email %s already exists", *overrides.Email))
		}
		return *overrides.Email, nil
	}

	var email string
	for attempt := 0; attempt < emailRetryAttempts; attempt++ {
		email = faker.UniqueEmail()
		exists, err := g.customers.ExistsByEmail(ctx, website.ID, email)
		if err != nil {
			return "", err
		}
		if !exists {
			return email, nil
		}
	}
	return "", shared.NewDomainError("EMAIL_EXHAUSTED", "Could not generate an unused email address")
}

// populateOptionalFields fills demographic fields by Bernoulli draws
func (g *CustomerGenerator) populateOptionalFields(c *customer.Customer, faker *Faker) {
	if g.chance.Happens(middleNameChance) {
		c.MiddleName = faker.MiddleName()
	}
	if g.chance.Happens(prefixChance) {
		c.Prefix = faker.NamePrefix()
	}
	if g.chance.Happens(suffixChance) {
		c.Suffix = faker.NameSuffix()
	}
	if g.chance.Happens(dobChance) {
		// SetDateOfBirth cannot fail for a faker-produced date
		_ = c.SetDateOfBirth(faker.DateOfBirth(dobMinAge, dobMaxAge))
	}
	if g.chance.Happens(genderChance) {
		genders := []customer.Gender{customer.GenderMale, customer.GenderFemale}
		_ = c.SetGender(genders[g.chance.Intn(len(genders))])
	}
	if g.chance.Happens(taxNumberChance) {
		c.TaxNumber = faker.TaxNumber()
	}
}

// applyOverrides pins customer fields after randomization
func (g *CustomerGenerator) applyOverrides(ctx context.Context, c *customer.Customer, overrides *CustomerOverrides) error {
	if overrides.MiddleName != nil {
		c.MiddleName = *overrides.MiddleName
	}
	if overrides.Prefix != nil {
		c.Prefix = *overrides.Prefix
	}
	if overrides.Suffix != nil {
		c.Suffix = *overrides.Suffix
	}
	if overrides.DateOfBirth != nil {
		c.DateOfBirth = *overrides.DateOfBirth
	}
	if overrides.Gender != nil {
		c.Gender = *overrides.Gender
	}
	if overrides.TaxNumber != nil {
		c.TaxNumber = *overrides.TaxNumber
	}
	if overrides.GroupCode != nil {
		group, err := g.groups.FindByCode(ctx, *overrides.GroupCode)
		if err != nil {
			return shared.NewDomainError("INVALID_GROUP",
				fmt.Sprintf("Invalid customer group code: %s", *overrides.GroupCode))
		}
		c.SetGroup(group.ID)
	}
	return nil
}

// attachAddresses creates locale-appropriate addresses. The first
// persisted address becomes default billing and shipping; failures
// become warnings and never abort the customer.
func (g *CustomerGenerator) attachAddresses(ctx context.Context, c *customer.Customer, faker *Faker, count int, result *Result) {
	created := 0
	countryID := faker.CountryID()

	for i := 0; i < count; i++ {
		street := faker.StreetAddress()
		if g.chance.Happens(20) {
			street += ", " + faker.SecondaryAddress()
		}

		addr, err := customer.NewAddress(
			c.ID,
			c.FirstName,
			c.LastName,
			street,
			faker.City(),
			countryID,
			faker.Postcode(countryID),
			faker.Phone(),
		)
		if err == nil {
			addr.Region = faker.Region()
			if g.chance.Happens(30) {
				addr.Company = faker.Company()
			}
			if created == 0 {
				addr.MarkDefault()
			}
			err = g.addresses.Save(ctx, addr)
		}
		if err != nil {
			g.logger.Warn("failed to create address for customer",
				zap.String("customer_id", c.ID.String()),
				zap.Error(err),
			)
			result.AddWarning(fmt.Sprintf("Address for %s: %s", c.Email, err.Error()))
			continue
		}
		c.Addresses = append(c.Addresses, *addr)
		created++
	}

	g.logger.Info("generated customer addresses",
		zap.String("customer_id", c.ID.String()),
		zap.Int("address_count", created),
	)
}

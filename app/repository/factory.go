package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles all repository instances
type Repositories struct {
	Checkout CheckoutRepository
	Coupon   CouponRepository
	Setting  SettingRepository
}

// NewRepositories creates all repositories on one DB handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Checkout: NewCheckoutRepository(db),
		Coupon:   NewCouponRepository(db),
		Setting:  NewSettingRepository(db),
	}
}

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// NewFactoryWithRepositories creates a factory over prebuilt repository
// instances. Tests use this to stub the persistence layer.
func NewFactoryWithRepositories(repos *Repositories) *Factory {
	f := &Factory{}
	f.once.Do(func() {
		f.repos = repos
	})
	return f
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetCheckoutRepository returns the checkout repository instance
func (f *Factory) GetCheckoutRepository() CheckoutRepository {
	return f.GetRepositories().Checkout
}

// GetCouponRepository returns the coupon repository instance
func (f *Factory) GetCouponRepository() CouponRepository {
	return f.GetRepositories().Coupon
}

// GetSettingRepository returns the setting repository instance
func (f *Factory) GetSettingRepository() SettingRepository {
	return f.GetRepositories().Setting
}

var (
	globalFactory   *Factory
	globalFactoryMu sync.RWMutex
)

// SetGlobalFactory installs the process-wide factory at startup.
func SetGlobalFactory(f *Factory) {
	globalFactoryMu.Lock()
	defer globalFactoryMu.Unlock()
	globalFactory = f
}

// GetGlobalFactory returns the process-wide factory.
func GetGlobalFactory() *Factory {
	globalFactoryMu.RLock()
	defer globalFactoryMu.RUnlock()
	return globalFactory
}

package usecases

import (
	"sync"
)

// SettingProvider holds the store-wide settings. The hourly rate is read
// only when an invoice is generated; changing it never touches existing
// invoices.
type SettingProvider struct {
	mu          sync.RWMutex
	ratePerHour float64
}

func NewSettingProvider(defaultRatePerHour float64) *SettingProvider {
	return &SettingProvider{ratePerHour: defaultRatePerHour}
}

func (p *SettingProvider) RatePerHour() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ratePerHour
}

func (p *SettingProvider) setRatePerHour(rate float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	previous := p.ratePerHour
	p.ratePerHour = rate
	return previous
}

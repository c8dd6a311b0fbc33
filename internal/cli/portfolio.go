package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/subscription-tracker/backend/internal/domain/billing"
	"github.com/subscription-tracker/backend/internal/domain/entity"
)

// Portfolio is the YAML file describing a set of subscriptions.
type Portfolio struct {
	Currency      string                  `yaml:"currency"`
	Subscriptions []PortfolioSubscription `yaml:"subscriptions"`
}

// PortfolioSubscription is one entry of the portfolio file.
type PortfolioSubscription struct {
	Name          string `yaml:"name"`
	Amount        string `yaml:"amount"`
	BillingDate   string `yaml:"billing_date"`
	RenewalPeriod string `yaml:"renewal_period"`
	Category      string `yaml:"category,omitempty"`
	Active        *bool  `yaml:"active,omitempty"` // Defaults to true
}

// LoadPortfolio reads and validates a portfolio file.
func LoadPortfolio(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading portfolio file: %w", err)
	}
	return ParsePortfolio(data)
}

// ParsePortfolio decodes portfolio YAML.
func ParsePortfolio(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing portfolio file: %w", err)
	}
	if p.Currency == "" {
		p.Currency = entity.DefaultCurrency
	}
	p.Currency = strings.ToUpper(p.Currency)

	for i, s := range p.Subscriptions {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("subscription #%d: name is required", i+1)
		}
		if _, err := decimal.NewFromString(s.Amount); err != nil {
			return nil, fmt.Errorf("subscription %q: invalid amount %q", s.Name, s.Amount)
		}
		if _, err := billing.ParseDate(s.BillingDate); err != nil {
			return nil, fmt.Errorf("subscription %q: %w", s.Name, err)
		}
	}
	return &p, nil
}

// Entities converts the portfolio into domain subscriptions owned by a throwaway user.
func (p *Portfolio) Entities() []*entity.Subscription {
	owner := uuid.New()
	subs := make([]*entity.Subscription, 0, len(p.Subscriptions))
	for _, s := range p.Subscriptions {
		amount, _ := decimal.NewFromString(s.Amount)
		date, _ := billing.ParseDate(s.BillingDate)

		sub := entity.NewSubscription(owner, strings.TrimSpace(s.Name), amount, date, s.RenewalPeriod)
		sub.Category = s.Category
		if s.Active != nil {
			sub.Active = *s.Active
		}
		subs = append(subs, sub)
	}
	return subs
}

func loadPortfolioFlag(path string) (*Portfolio, []*entity.Subscription, error) {
	p, err := LoadPortfolio(path)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Entities(), nil
}

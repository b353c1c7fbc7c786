package partner

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/invoiceme/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

const (
	maxCustomerNameLength  = 200
	maxCustomerEmailLength = 200
	maxCustomerPhoneLength = 50
)

// Customer represents a billable customer.
// It is the aggregate root for customer-related operations; invoices
// reference customers by ID only.
type Customer struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Address string `gorm:"type:text"`
	Phone   string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with validated fields
func NewCustomer(name, email, address, phone string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := validateCustomerEmail(email); err != nil {
		return nil, err
	}
	if err := validateCustomerPhone(phone); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Address:           address,
		Phone:             phone,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// UpdateDetails updates customer fields. Nil pointers leave the current
// value untouched; provided values are validated before anything is
// applied, so a failed update leaves the customer unchanged.
func (c *Customer) UpdateDetails(name, email, address, phone *string) error {
	if name != nil {
		if err := validateCustomerName(*name); err != nil {
			return err
		}
	}
	if email != nil {
		if err := validateCustomerEmail(*email); err != nil {
			return err
		}
	}
	if phone != nil {
		if err := validateCustomerPhone(*phone); err != nil {
			return err
		}
	}

	if name != nil {
		c.Name = strings.TrimSpace(*name)
	}
	if email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*email))
	}
	if address != nil {
		c.Address = *address
	}
	if phone != nil {
		c.Phone = *phone
	}

	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

func validateCustomerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError(shared.CodeValidationFailed, "Customer name is required")
	}
	if len(trimmed) > maxCustomerNameLength {
		return shared.NewDomainError(shared.CodeValidationFailed,
			fmt.Sprintf("Customer name cannot exceed %d characters", maxCustomerNameLength))
	}
	return nil
}

func validateCustomerEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return shared.NewDomainError(shared.CodeValidationFailed, "Customer email is required")
	}
	if len(trimmed) > maxCustomerEmailLength {
		return shared.NewDomainError(shared.CodeValidationFailed,
			fmt.Sprintf("Customer email cannot exceed %d characters", maxCustomerEmailLength))
	}
	if !emailPattern.MatchString(trimmed) {
		return shared.NewDomainError(shared.CodeValidationFailed,
			fmt.Sprintf("Invalid email format: %s", trimmed))
	}
	return nil
}

func validateCustomerPhone(phone string) error {
	if len(phone) > maxCustomerPhoneLength {
		return shared.NewDomainError(shared.CodeValidationFailed,
			fmt.Sprintf("Customer phone cannot exceed %d characters", maxCustomerPhoneLength))
	}
	return nil
}

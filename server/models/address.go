package models

import (
	"time"

	"gorm.io/gorm"
)

var addressFields = []string{"street", "city", "province", "country", "postal_code", "updated_at"}

type Address struct {
	BaseModel
	Street     string `json:"street" gorm:"size:200"`
	City       string `json:"city" gorm:"size:100"`
	Province   string `json:"province" gorm:"size:100"`
	Country    string `json:"country" gorm:"size:100;not null"`
	PostalCode string `json:"postal_code" gorm:"size:10"`
	ContactID  uint   `json:"-" gorm:"not null;index"`
}

func (contact *Contact) AddAddress(address *Address) error {
	address.ID = 0
	address.ContactID = contact.ID
	return db.Create(address).Error
}

// FindAddress returns the contact's address with the given id, or gorm.ErrRecordNotFound
// when it doesn't exist or belongs to another contact.
func (contact *Contact) FindAddress(id interface{}) (*Address, error) {
	return findAddress(db, contact.ID, id)
}

// LoadAddresses fetches all addresses of the contact in id order.
func (contact *Contact) LoadAddresses() error {
	contact.Addresses = []Address{}
	return db.Where("contact_id = ?", contact.ID).Order("id asc").Find(&contact.Addresses).Error
}

// UpdateAddress replaces the editable fields of the contact's address with those in changes.
func (contact *Contact) UpdateAddress(id interface{}, changes Address) (*Address, error) {
	address := &Address{}

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		address, err = findAddress(tx, contact.ID, id)
		if err != nil {
			return err
		}

		changes.UpdatedAt = time.Now()
		err = tx.Model(address).Select(addressFields).Updates(&changes).Error
		if err != nil {
			return err
		}

		return tx.First(address, address.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (contact *Contact) DeleteAddress(id interface{}) error {
	return db.Transaction(func(tx *gorm.DB) error {
		address, err := findAddress(tx, contact.ID, id)
		if err != nil {
			return err
		}

		return tx.Delete(address).Error
	})
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func findAddress(tx *gorm.DB, contactID uint, id interface{}) (*Address, error) {
	address := Address{}
	err := tx.Where("id = ? AND contact_id = ?", id, contactID).First(&address).Error
	if err != nil {
		return nil, err
	}

	return &address, nil
}

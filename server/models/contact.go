package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

var contactFields = []string{"first_name", "last_name", "email", "phone", "updated_at"}

type Contact struct {
	BaseModel
	FirstName string    `json:"first_name" gorm:"size:100;not null"`
	LastName  string    `json:"last_name" gorm:"size:100"`
	Email     string    `json:"email" gorm:"size:200"`
	Phone     string    `json:"phone" gorm:"size:20"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	Addresses []Address `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// ContactFilter narrows a contact search. Empty fields are ignored.
type ContactFilter struct {
	Name  string
	Email string
	Phone string
	Page  int
	Size  int
}

func (user *User) AddContact(contact *Contact) error {
	contact.ID = 0
	contact.UserID = user.ID
	return db.Create(contact).Error
}

// FindContact returns the user's contact with the given id, or gorm.ErrRecordNotFound
// when it doesn't exist or belongs to someone else.
func (user *User) FindContact(id interface{}) (*Contact, error) {
	return findContact(db, user.ID, id)
}

// UpdateContact replaces the editable fields of the user's contact with those in changes.
func (user *User) UpdateContact(id interface{}, changes Contact) (*Contact, error) {
	contact := &Contact{}

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		contact, err = findContact(tx, user.ID, id)
		if err != nil {
			return err
		}

		changes.UpdatedAt = time.Now()
		err = tx.Model(contact).Select(contactFields).Updates(&changes).Error
		if err != nil {
			return err
		}

		return tx.First(contact, contact.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// DeleteContact removes the user's contact along with all of its addresses.
func (user *User) DeleteContact(id interface{}) error {
	return db.Transaction(func(tx *gorm.DB) error {
		contact, err := findContact(tx, user.ID, id)
		if err != nil {
			return err
		}

		err = tx.Where("contact_id = ?", contact.ID).Delete(&Address{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(contact).Error
	})
}

// SearchContacts returns one page of the user's contacts matching filter, in id order.
func (user *User) SearchContacts(filter ContactFilter) ([]Contact, *Paging, error) {
	var total int64
	contacts := []Contact{}

	err := db.Model(&Contact{}).Scopes(contactSearch(user.ID, filter)).Count(&total).Error
	if err != nil {
		return nil, nil, err
	}

	err = db.Scopes(contactSearch(user.ID, filter), paginate(filter.Page, filter.Size)).
		Order("id asc").Find(&contacts).Error
	if err != nil {
		return nil, nil, err
	}

	return contacts, newPaging(filter.Page, filter.Size, total), nil
}

// ---------------------------------------------------------------------------------//
// Scopes
// --------------------------------------------------------------------------------//

func contactSearch(userID uint, filter ContactFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", userID)

		if name := strings.TrimSpace(filter.Name); name != "" {
			pattern := likePattern(name)
			db = db.Where(
				`(LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\')`,
				pattern, pattern,
			)
		}

		if email := strings.TrimSpace(filter.Email); email != "" {
			db = db.Where(`LOWER(email) LIKE ? ESCAPE '\'`, likePattern(email))
		}

		if phone := strings.TrimSpace(filter.Phone); phone != "" {
			db = db.Where(`LOWER(phone) LIKE ? ESCAPE '\'`, likePattern(phone))
		}

		return db
	}
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func findContact(tx *gorm.DB, userID uint, id interface{}) (*Contact, error) {
	contact := Contact{}
	err := tx.Where("id = ? AND user_id = ?", id, userID).First(&contact).Error
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive "contains" pattern, treating
// LIKE wildcards in value as literals.
func likePattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAddressScoping(t *testing.T) {
	InitializeTestDb()

	tony := createTestUser(t, "tony", "very-secure")
	pepper := &Contact{FirstName: "pepper"}
	happy := &Contact{FirstName: "happy"}
	require.Nil(t, tony.AddContact(pepper))
	require.Nil(t, tony.AddContact(happy))

	address := &Address{Street: "10880 Malibu Point", City: "Malibu", Province: "CA", Country: "USA", PostalCode: "90265"}
	require.Nil(t, pepper.AddAddress(address))
	assert.Equal(t, pepper.ID, address.ContactID)

	t.Run("Owning contact can find address", func(t *testing.T) {
		found, err := pepper.FindAddress(address.ID)
		require.Nil(t, err)
		assert.Equal(t, "Malibu", found.City)
	})

	t.Run("Other contacts get not found", func(t *testing.T) {
		_, err := happy.FindAddress(address.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		_, err = happy.UpdateAddress(address.ID, Address{Country: "Canada"})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		err = happy.DeleteAddress(address.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		found, err := pepper.FindAddress(address.ID)
		require.Nil(t, err)
		assert.Equal(t, "USA", found.Country, "Address should be unchanged")
	})

	t.Run("Missing ids get not found", func(t *testing.T) {
		_, err := pepper.FindAddress(address.ID + 1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestUpdateAndDeleteAddress(t *testing.T) {
	InitializeTestDb()

	tony := createTestUser(t, "tony", "very-secure")
	pepper := &Contact{FirstName: "pepper"}
	require.Nil(t, tony.AddContact(pepper))

	address := &Address{Street: "10880 Malibu Point", City: "Malibu", Country: "USA"}
	require.Nil(t, pepper.AddAddress(address))

	updated, err := pepper.UpdateAddress(address.ID, Address{Street: "Stark Tower", City: "New York", Country: "USA", PostalCode: "10001"})
	require.Nil(t, err)
	assert.Equal(t, "Stark Tower", updated.Street)
	assert.Equal(t, "New York", updated.City)
	assert.Equal(t, "10001", updated.PostalCode)
	assert.Empty(t, updated.Province)
	assert.Equal(t, pepper.ID, updated.ContactID)

	require.Nil(t, pepper.AddAddress(&Address{Country: "Canada"}))
	require.Nil(t, pepper.LoadAddresses())
	require.Len(t, pepper.Addresses, 2)
	assert.Equal(t, address.ID, pepper.Addresses[0].ID, "Addresses should be listed in id order")

	err = pepper.DeleteAddress(address.ID)
	assert.Nil(t, err)

	_, err = pepper.FindAddress(address.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.Nil(t, pepper.LoadAddresses())
	assert.Len(t, pepper.Addresses, 1)
}

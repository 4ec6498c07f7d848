package server

import (
	"net/http"

	"github.com/Daskott/rolodex/server/models"
)

// ---------------------------------------------------------------------------------//
// Contacts
// --------------------------------------------------------------------------------//

func createContact(rw http.ResponseWriter, r *http.Request) {
	data := contactRequest{}
	if !decodeAndValidate(rw, r, &data) {
		return
	}

	contact := data.toContact()
	err := currentUser(r).AddContact(&contact)
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeData(rw, contact, http.StatusCreated)
}

func findContact(rw http.ResponseWriter, r *http.Request) {
	contact, err := contactFromPath(r, "id")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	writeData(rw, contact, http.StatusOK)
}

func updateContact(rw http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	data := contactRequest{}
	if !decodeAndValidate(rw, r, &data) {
		return
	}

	contact, err := currentUser(r).UpdateContact(id, data.toContact())
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	writeData(rw, contact, http.StatusOK)
}

func deleteContact(rw http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	err = currentUser(r).DeleteContact(id)
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	writeData(rw, true, http.StatusOK)
}

func searchContacts(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	contacts, paging, err := currentUser(r).SearchContacts(models.ContactFilter{
		Name:  query.Get("name"),
		Email: query.Get("email"),
		Phone: query.Get("phone"),
		Page:  queryInt(r, "page"),
		Size:  queryInt(r, "size"),
	})
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeResponse(rw, ResponsePayload{Data: contacts, Meta: paging}, http.StatusOK)
}

// ---------------------------------------------------------------------------------//
// Addresses
// --------------------------------------------------------------------------------//

func createAddress(rw http.ResponseWriter, r *http.Request) {
	contact, err := contactFromPath(r, "contactId")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	data := addressRequest{}
	if !decodeAndValidate(rw, r, &data) {
		return
	}

	address := data.toAddress()
	err = contact.AddAddress(&address)
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeData(rw, address, http.StatusCreated)
}

func listAddresses(rw http.ResponseWriter, r *http.Request) {
	contact, err := contactFromPath(r, "contactId")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	err = contact.LoadAddresses()
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeData(rw, contact.Addresses, http.StatusOK)
}

func findAddress(rw http.ResponseWriter, r *http.Request) {
	contact, err := contactFromPath(r, "contactId")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	address, err := contact.FindAddress(id)
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	writeData(rw, address, http.StatusOK)
}

func updateAddress(rw http.ResponseWriter, r *http.Request) {
	contact, err := contactFromPath(r, "contactId")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	data := addressRequest{}
	if !decodeAndValidate(rw, r, &data) {
		return
	}

	address, err := contact.UpdateAddress(id, data.toAddress())
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	writeData(rw, address, http.StatusOK)
}

func deleteAddress(rw http.ResponseWriter, r *http.Request) {
	contact, err := contactFromPath(r, "contactId")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	err = contact.DeleteAddress(id)
	if err != nil {
		writeLookupError(rw, err)
		return
	}

	writeData(rw, true, http.StatusOK)
}

// contactFromPath resolves the contact named by the route variable
// among the current user's contacts.
func contactFromPath(r *http.Request, name string) (*models.Contact, error) {
	id, err := pathID(r, name)
	if err != nil {
		return nil, err
	}

	return currentUser(r).FindContact(id)
}

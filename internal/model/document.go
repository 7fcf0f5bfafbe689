package model

import (
	"fmt"

	"github.com/dumpsift/dumpsift/internal/codec"
)

// Document is the persistence shape of an account. Field names are part of
// the storage interop contract and must not change.
//
// The "e" key holds only the decoded local part of the email: the domain is
// recoverable from the identifier's domain chunk, and omitting it keeps the
// dominant key short at dump scale. Empty fields are omitted entirely.
type Document struct {
	ID       string `json:"_id"`
	Email    string `json:"e,omitempty"`
	Username string `json:"u,omitempty"`
	Password string `json:"p,omitempty"`
	Hash     string `json:"h,omitempty"`
	Misc     string `json:"m,omitempty"`
}

// Presentation is the human-facing shape of an account. Unlike Document,
// every value key is always present (empty string when unset) and "e" holds
// the full email address.
type Presentation struct {
	ID       string `json:"i"`
	Email    string `json:"e"`
	Username string `json:"u"`
	Password string `json:"p"`
	Hash     string `json:"h"`
	Misc     string `json:"m"`
}

// Document converts the account to its persistence shape. The error return
// is part of the rendering contract; the current codec is total, so the
// failure path is unreachable today.
func (a *Account) Document() (Document, error) {
	doc := Document{ID: a.ID()}

	if a.HasEmail() {
		local, _ := a.SplitEmail()
		doc.Email = codec.Decode(local)
	}
	if !isEmpty(a.username) {
		doc.Username = codec.Decode(a.username)
	}
	if !isEmpty(a.password) {
		doc.Password = codec.Decode(a.password)
	}
	if !isEmpty(a.hash) {
		doc.Hash = codec.Decode(a.hash)
	}
	if !isEmpty(a.misc) {
		doc.Misc = codec.Decode(a.misc)
	}

	return doc, nil
}

// Presentation converts the account to its human-facing shape.
func (a *Account) Presentation() Presentation {
	return Presentation{
		ID:       a.ID(),
		Email:    codec.Decode(a.email),
		Username: codec.Decode(a.username),
		Password: codec.Decode(a.password),
		Hash:     codec.Decode(a.hash),
		Misc:     codec.Decode(a.misc),
	}
}

// FromDocument reconstructs an account from its persisted shape. The email
// is recovered by joining the stored local part with the byte-reversed
// domain chunk of the identifier, then the full normalization pipeline runs
// again, so the result is canonical by construction.
func FromDocument(doc Document) (*Account, error) {
	var email []byte
	if doc.Email != "" {
		email = codec.Encode(doc.Email + "@" + reverseString(DomainChunkOf(doc.ID)))
	}

	account, err := NewAccount(
		email,
		codec.Encode(doc.Username),
		codec.Encode(doc.Password),
		codec.Encode(doc.Hash),
		codec.Encode(doc.Misc),
		false,
	)
	if err != nil {
		return nil, fmt.Errorf("reconstructing account from document %q: %w", doc.ID, err)
	}
	return account, nil
}

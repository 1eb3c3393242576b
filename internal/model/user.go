// Package model holds the domain types shared by the repository, service
// and handler layers.
package model

// User is a stored user record. Latitude, Longitude and Timezone are derived
// from Zip by the enrichment client and never supplied by callers.
type User struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Zip       string  `json:"zip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// UserDocument is the value persisted under a user id in the users
// collection. The id itself is the key.
type UserDocument struct {
	Name      string  `json:"name"`
	Zip       string  `json:"zip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Document returns the persisted form of u.
func (u User) Document() UserDocument {
	return UserDocument{
		Name:      u.Name,
		Zip:       u.Zip,
		Latitude:  u.Latitude,
		Longitude: u.Longitude,
		Timezone:  u.Timezone,
	}
}

// User rebuilds the record stored under id.
func (d UserDocument) User(id string) User {
	return User{
		ID:        id,
		Name:      d.Name,
		Zip:       d.Zip,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
		Timezone:  d.Timezone,
	}
}

// GeoFields are the zip code and everything derived from it. They are
// always written together.
type GeoFields struct {
	Zip       string  `json:"zip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name *string
	Geo  *GeoFields
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Geo == nil
}

// Apply returns d with the patch applied.
func (p UserPatch) Apply(d UserDocument) UserDocument {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Geo != nil {
		d.Zip = p.Geo.Zip
		d.Latitude = p.Geo.Latitude
		d.Longitude = p.Geo.Longitude
		d.Timezone = p.Geo.Timezone
	}
	return d
}

// Fields returns the patch as a flat JSON-able map using the document keys.
func (p UserPatch) Fields() map[string]any {
	fields := make(map[string]any, 5)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Geo != nil {
		fields["zip"] = p.Geo.Zip
		fields["latitude"] = p.Geo.Latitude
		fields["longitude"] = p.Geo.Longitude
		fields["timezone"] = p.Geo.Timezone
	}
	return fields
}

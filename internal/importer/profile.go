package importer

// Profile describes the column layout of a customer list export.
// Adding a new source is just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	NameCol    string
	PhoneCol   string
	EmailCol   string
	AddressCol string
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.PhoneCol, p.EmailCol, p.AddressCol}
}

// profiles is the ordered list of layouts tried during auto-detection.
// Header matching is case-insensitive.
var profiles = []Profile{
	{
		Name:       "fieldwork",
		NameCol:    "name",
		PhoneCol:   "phone",
		EmailCol:   "email",
		AddressCol: "address",
	},
	{
		Name:       "google-contacts",
		NameCol:    "name",
		PhoneCol:   "phone 1 - value",
		EmailCol:   "e-mail 1 - value",
		AddressCol: "address 1 - formatted",
	},
	{
		Name:       "outlook",
		NameCol:    "display name",
		PhoneCol:   "mobile phone",
		EmailCol:   "e-mail address",
		AddressCol: "home address",
	},
}

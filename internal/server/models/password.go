package models

type Folder string

const (
	FolderWork          Folder = "Work"
	FolderPersonal      Folder = "Personal"
	FolderUncategorized Folder = "Uncategorized"
)

func (f Folder) IsValid() bool {
	switch f {
	case FolderWork, FolderPersonal, FolderUncategorized:
		return true
	}
	return false
}

// Password is a shared credential record. The secret value is stored verbatim
// and round-trips unchanged through save and list. ExpiryDate, when set, is a
// calendar date in YYYY-MM-DD form; empty means no expiry.
type Password struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	PasswordValue string `json:"passwordValue"`
	URL           string `json:"url,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Folder        Folder `json:"folder"`
	ExpiryDate    string `json:"expiryDate,omitempty"`
}

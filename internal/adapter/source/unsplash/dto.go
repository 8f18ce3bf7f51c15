package unsplash

// photoDTO is the subset of the Unsplash photo object we read.
// The list and single-photo endpoints share this shape.
type photoDTO struct {
	ID             string  `json:"id"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Color          string  `json:"color"`
	Description    *string `json:"description"`
	AltDescription *string `json:"alt_description"`
	URLs           urlsDTO `json:"urls"`
	Links          linksDTO `json:"links"`
	User           userDTO `json:"user"`
}

type urlsDTO struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type linksDTO struct {
	HTML string `json:"html"`
}

type userDTO struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// errorDTO is the error envelope Unsplash returns on 4xx/5xx
type errorDTO struct {
	Errors []string `json:"errors"`
}

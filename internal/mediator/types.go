package mediator

// Wire types for the category API. Fields we do not consume are omitted;
// the decoder ignores them.

type categoryResponse struct {
	Status   string   `json:"status"`
	Category Category `json:"category"`
}

// Category is one node of the remote taxonomy as served by the API.
type Category struct {
	Key           string     `json:"key"`
	Name          string     `json:"name"`
	Tags          []string   `json:"tags"`
	Subcategories []Category `json:"subcategories"`
	Media         []Item     `json:"media"`
}

// Item is a single media entry inside a category.
type Item struct {
	Title           string   `json:"title"`
	Key             string   `json:"languageAgnosticNaturalKey"`
	FirstPublished  string   `json:"firstPublished"`
	PrimaryCategory string   `json:"primaryCategory"`
	Duration        float64  `json:"duration"`
	Tags            []string `json:"tags"`
	Files           []File   `json:"files"`
}

// File is one concrete rendition of an item.
type File struct {
	Label       string `json:"label"`
	FrameHeight int    `json:"frameHeight"`
	Subtitled   bool   `json:"subtitled"`
	URL         string `json:"progressiveDownloadURL"`
	Checksum    string `json:"checksum"`
	Filesize    int64  `json:"filesize"`
	Subtitles   *struct {
		URL string `json:"url"`
	} `json:"subtitles"`
}

// HasTag reports whether the item carries the given tag.
func (i *Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type languagesResponse struct {
	Languages []Language `json:"languages"`
}

// Language is one entry of the language index.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

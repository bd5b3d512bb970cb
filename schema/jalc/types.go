// Package jalc contains the subset of the Japan Link Center (JaLC) API
// response shape needed for metadata extraction. Most list-valued fields
// carry parallel language variants tagged with a lang code.
package jalc

// Response is a single DOI response.
type Response struct {
	Data Data `json:"data"`
}

type Data struct {
	ContentType          string         `json:"content_type"`
	TitleList            []Title        `json:"title_list"`
	PublisherList        []Publisher    `json:"publisher_list"`
	CreatorList          []Creator      `json:"creator_list"`
	JournalTitleNameList []JournalTitle `json:"journal_title_name_list"`
	PublicationDate      Date           `json:"publication_date"`
	Volume               string         `json:"volume"`
	Issue                string         `json:"issue"`
	FirstPage            string         `json:"first_page"`
	LastPage             string         `json:"last_page"`
}

type Title struct {
	Lang  string `json:"lang"`
	Title string `json:"title"`
}

type Publisher struct {
	Lang          string `json:"lang"`
	PublisherName string `json:"publisher_name"`
}

type Creator struct {
	Sequence string `json:"sequence"`
	Names    []Name `json:"names"`
}

type Name struct {
	Lang      string `json:"lang"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
}

type JournalTitle struct {
	Lang             string `json:"lang"`
	Type             string `json:"type"`
	JournalTitleName string `json:"journal_title_name"`
}

type Date struct {
	PublicationYear  string `json:"publication_year"`
	PublicationMonth string `json:"publication_month"`
	PublicationDay   string `json:"publication_day"`
}

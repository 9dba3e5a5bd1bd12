package pagestore

// Wire types for the document store's page objects. Every property carries a
// type tag; readers check the tag before touching the typed payload, so a
// record whose property has the wrong shape degrades to the zero value
// instead of erroring.

type Page struct {
	Object     string              `json:"object"`
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

func (p Page) IsPage() bool {
	return p.Object == "page" && p.ID != "" && p.Properties != nil
}

type Property struct {
	Type     string        `json:"type"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
	Email    *string       `json:"email,omitempty"`
}

type RichText struct {
	PlainText string `json:"plain_text"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string `json:"start"`
}

func (p Page) TitleText(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Type != "title" || len(prop.Title) == 0 {
		return ""
	}
	return prop.Title[0].PlainText
}

func (p Page) Text(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Type != "rich_text" || len(prop.RichText) == 0 {
		return ""
	}
	return prop.RichText[0].PlainText
}

func (p Page) SelectName(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Type != "select" || prop.Select == nil {
		return ""
	}
	return prop.Select.Name
}

func (p Page) DateStart(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Type != "date" || prop.Date == nil {
		return ""
	}
	return prop.Date.Start
}

func (p Page) EmailValue(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Type != "email" || prop.Email == nil {
		return ""
	}
	return *p.Properties[name].Email
}

// ---------------------------------------------------------------------------
// Write-side property builders. The update endpoint distinguishes "omit this
// property" (key absent) from "clear it" (empty list / null date), which is
// what keeps partial updates partial.

func titleProperty(content string) map[string]any {
	return map[string]any{
		"title": []any{textItem(content)},
	}
}

func richTextProperty(content string) map[string]any {
	items := []any{}
	if content != "" {
		items = append(items, textItem(content))
	}
	return map[string]any{"rich_text": items}
}

func selectProperty(name string) map[string]any {
	return map[string]any{
		"select": map[string]any{"name": name},
	}
}

func dateProperty(start string) map[string]any {
	if start == "" {
		return map[string]any{"date": nil}
	}
	return map[string]any{
		"date": map[string]any{"start": start},
	}
}

func emailProperty(address string) map[string]any {
	return map[string]any{"email": address}
}

func textItem(content string) map[string]any {
	return map[string]any{
		"text": map[string]any{"content": content},
	}
}

package entity

import (
	"fmt"
	"strings"
)

// SearchType selects the article field a keyword search is scoped to.
type SearchType int

const (
	SearchTypeTitle SearchType = iota + 1
	SearchTypeContent
	SearchTypeID
	SearchTypeNickname
	SearchTypeHashtag
)

var searchTypeNames = map[SearchType]string{
	SearchTypeTitle:    "TITLE",
	SearchTypeContent:  "CONTENT",
	SearchTypeID:       "ID",
	SearchTypeNickname: "NICKNAME",
	SearchTypeHashtag:  "HASHTAG",
}

var searchTypeDescriptions = map[SearchType]string{
	SearchTypeTitle:    "Title",
	SearchTypeContent:  "Content",
	SearchTypeID:       "User ID",
	SearchTypeNickname: "Nickname",
	SearchTypeHashtag:  "Hashtag",
}

// SearchTypes lists every search type in display order.
func SearchTypes() []SearchType {
	return []SearchType{
		SearchTypeTitle,
		SearchTypeContent,
		SearchTypeID,
		SearchTypeNickname,
		SearchTypeHashtag,
	}
}

// String returns the wire name used in query strings, e.g. "TITLE".
func (s SearchType) String() string {
	if name, ok := searchTypeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SearchType(%d)", int(s))
}

// Description returns the label shown in the search form.
func (s SearchType) Description() string {
	return searchTypeDescriptions[s]
}

// IsValid reports whether s is one of the declared search types.
func (s SearchType) IsValid() bool {
	_, ok := searchTypeNames[s]
	return ok
}

// ParseSearchType maps a query-string value to a SearchType. Matching is case-insensitive.
// An empty string yields zero and no error, meaning "no search type given".
func ParseSearchType(raw string) (SearchType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	for st, name := range searchTypeNames {
		if strings.EqualFold(name, raw) {
			return st, nil
		}
	}
	return 0, &ValidationError{Field: "searchType", Message: fmt.Sprintf("unknown search type %q", raw)}
}

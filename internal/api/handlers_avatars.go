package api

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
)

var avatarPalette = []string{
	"#E74C3C", "#E91E63", "#9B59B6", "#5C6BC0",
	"#3498DB", "#26A69A", "#7CB342", "#FF7043",
}

// InitialsAvatar renders a small SVG avatar from the first letters of the
// name, colored deterministically so a user always sees the same tile.
func (handler *Handler) InitialsAvatar(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	initials := nameInitials(name)

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="96" height="96" viewBox="0 0 96 96">`+
			`<rect width="96" height="96" rx="48" fill="%s"/>`+
			`<text x="48" y="48" dy=".35em" text-anchor="middle" font-family="sans-serif" font-size="38" fill="#FFFFFF">%s</text>`+
			`</svg>`,
		avatarColor(name), initials,
	)

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(svg)
}

func nameInitials(name string) string {
	words := strings.Fields(name)
	initials := make([]rune, 0, 2)
	for _, word := range words {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				initials = append(initials, unicode.ToUpper(r))
			}
			break
		}
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return string(initials)
}

func avatarColor(name string) string {
	digest := fnv.New32a()
	_, _ = digest.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	return avatarPalette[int(digest.Sum32())%len(avatarPalette)]
}

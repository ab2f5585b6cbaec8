package article

import (
	"fmt"
	"regexp"
	"strings"
)

var asciiTopicPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,!?:;()]+$`)

// ImagePrompts returns one featured image spec plus up to
// maxContentImages-1 content specs, one per leading section. All prompts share
// a palette derived from the topic and contain only ASCII English.
func ImagePrompts(a *Article, maxContentImages int) []ImageSpec {
	if maxContentImages < 1 {
		maxContentImages = 1
	}
	topic := firstNonEmpty(a.Topic, a.FocusKeyword)
	title := firstNonEmpty(a.Title, topic)

	palette := palettes[ordSum(topic)%len(palettes)]
	unified := fmt.Sprintf("Color palette: %s. "+
		"Style: modern 3D render with glassmorphism elements, soft ambient lighting, "+
		"depth of field blur on edges, clean geometric shapes. "+
		"CRITICAL: absolutely NO text, NO letters, NO numbers, NO words, NO Chinese characters, "+
		"NO symbols, NO watermark anywhere in the image. "+
		"NO human faces, NO people, NO characters. "+
		"Pure abstract visual illustration only.", palette)

	specs := []ImageSpec{{
		Role: RoleFeatured,
		Prompt: fmt.Sprintf("Hero banner illustration for a business technology article about %s. "+
			"Abstract geometric composition: floating 3D shapes, interconnected glowing nodes, "+
			"flowing data streams with particle effects, dynamic motion suggesting innovation. "+
			"%s Wide 16:9 aspect ratio, 4K quality digital illustration.", TopicToEnglish(topic), unified),
		AltText: title,
		Caption: title,
	}}

	sections := a.Sections[:min(len(a.Sections), maxContentImages-1)]
	for i, sec := range sections {
		secTitle := firstNonEmpty(sec.Title, topic)
		specs = append(specs, ImageSpec{
			Role: RoleContent,
			Prompt: fmt.Sprintf("Professional illustration visualizing the concept of %s. "+
				"Visual metaphor: %s. Artistic approach: %s. %s "+
				"Composition: balanced layout with clear focal point, "+
				"subtle depth through layering and soft shadows. "+
				"High quality, 16:9 aspect ratio, 4K resolution.",
				TopicToEnglish(secTitle), sectionConcept(sec), imageStyles[i%len(imageStyles)], unified),
			AltText: topic + " - " + secTitle,
			Caption: secTitle,
		})
	}
	return specs
}

// TopicToEnglish maps a topic to an English concept phrase. Unmatched
// non-ASCII input falls back to a generic phrase.
func TopicToEnglish(topic string) string {
	var parts []string
	for _, c := range topicConcepts {
		if strings.Contains(topic, c.Keyword) {
			parts = append(parts, c.English)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts[:min(len(parts), 4)], " ")
	}
	if asciiTopicPattern.MatchString(topic) {
		return topic
	}
	return genericTopicConcept
}

func sectionConcept(sec Section) string {
	text := sec.Title
	if len(sec.Paragraphs) > 0 {
		text += " " + truncateRunes(sec.Paragraphs[0], 80)
	} else {
		text += " " + sec.Title
	}

	var matched []string
	for _, c := range sectionConcepts {
		if strings.Contains(text, c.Keyword) {
			matched = append(matched, c.English)
		}
	}
	if len(matched) == 0 {
		return genericSectionConcept
	}
	return strings.Join(matched[:min(len(matched), 2)], " and ")
}

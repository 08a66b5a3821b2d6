package content

import "strings"

// Static text used in simulation mode and whenever generation fails.
const (
	FallbackMission = `**The Moneybags Family Mission Statement**

We believe wealth is not a number but a responsibility, and an opportunity to leave a lasting, positive mark. Our family commits to hard work, lifelong learning, and generous philanthropy.

We pledge to use what we have been given to keep our family close across generations, to help each member reach their fullest potential, and to leave the world better than we found it. This is our legacy.`

	FallbackHeirExplanation = `Did you know? Your family picked this investment to grow wealth over the long haul. Think of it like a tree planted decades ago that keeps getting taller: it is meant to gain value slowly while keeping things steady. Your grandfather sees it as one piece of something built to outlast any single generation, a foundation for the dreams you have not even had yet!`

	// fallbackAdvisorEmail greets heirPlaceholder, which is replaced with the heir's first name.
	fallbackAdvisorEmail = `Hi {heir},

I noticed you were looking through some of the family investments, which is great to see! Your grandfather has cared about this one for a long time, and I would love to share the story behind it.

No pressure at all, but if you ever want to grab a coffee and talk about how these investments fit your own goals, I am here. Tech stocks or just the basics, happy to help.

Best,
Sarah`
)

const heirPlaceholder = "{heir}"

// FallbackAdvisorEmail returns the static advisor email addressed to heirName.
func FallbackAdvisorEmail(heirName string) string {
	name := firstWord(strings.TrimSpace(heirName))
	if name == "" {
		name = "there"
	}
	return strings.ReplaceAll(fallbackAdvisorEmail, heirPlaceholder, name)
}

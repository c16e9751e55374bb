// Package content holds the portfolio copy, one markdown document per
// section.
package content

var (
	About = `# About

I love building software that's both useful and fun, and I'm always curious
about how things work behind the scenes. Most of my projects start with a
simple idea and turn into a chance to learn something new, whether it's
exploring a different language, experimenting with tools, or solving tricky
problems.

When I'm not coding, you'll usually find me training Muay Thai, shooting pool
with friends, or chasing down a new challenge outside the screen.`

	Skills = `# Skills

**Programming Languages:** Go, Python, Java, HTML, CSS

**Libraries/Frameworks:** Gin, Bubble Tea, HTMX, Tailwind CSS, Alpine.js,
scikit-learn, Pandas

**Tools / Platforms:** Git, Docker, Linux, Jupyter, Figma

**Databases:** SQLite, PostgreSQL, MySQL`

	Projects = `# Projects

## Terminal Mail

A terminal-based email client built in Go with fuzzyfinder capabilities using
the Charmbracelet TUI framework and go-imap.

## Terminal Music

A terminal-based music streaming application built in Go with an elegant TUI
interface, leveraging yt-dlp and mpv for seamless YouTube Music playback
directly from the command line.

## Game Recommender

A machine learning-powered web application that uses TF-IDF vectorization and
cosine similarity to recommend games based on content analysis, featuring
interactive data visualizations and real-time filtering by user reviews and
ratings.

## This Portfolio

A portfolio built with Go, served over HTTP with Gin and HTMX, and browsable
from the terminal with Bubble Tea.`

	Experience = `# Experience

## Presentation Expert, Target
*Aug 2023 – Present*

- Executed over 300 merchandising transitions on tight timelines by organizing
  team workflows and adapting quickly to changing priorities
- Boosted operational efficiency by managing backroom inventory processes and
  streamlining communication between floor and logistics teams
- Enhanced pricing and signage accuracy across departments by standardizing
  daily checks and collaborating cross-functionally

## Manager, Jasons Catered Events
*Aug 2016 – Present*

- Improved client satisfaction by coordinating customized menus and ensuring
  all dietary requirements were accurately met
- Supported event technology by troubleshooting AV equipment and managing
  digital order tracking systems
- Maintained supply inventory and coordinated timely delivery between venues

## Education

**Bachelor of Computer Science**, Western Governors University (2019 – 2023)`

	Contact = `# Get In Touch

Feel free to reach out with the form below, or connect with me on
[GitHub](https://github.com/Zachkp).`
)

// Sections maps each section id to its markdown.
var Sections = map[string]string{
	"about":      About,
	"skills":     Skills,
	"projects":   Projects,
	"experience": Experience,
	"contact":    Contact,
}

// Footer is shown under the last section.
const Footer = "Zach. All rights reserved."

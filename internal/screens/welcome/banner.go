package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ██╗   ██╗██████╗  █████╗ ████████╗██╗  ██╗
 ██╔════╝██╔══██╗██║   ██║██╔══██╗██╔══██╗╚══██╔══╝██║  ██║
 █████╗  ██║  ██║██║   ██║██████╔╝███████║   ██║   ███████║
 ██╔══╝  ██║  ██║██║   ██║██╔═══╝ ██╔══██║   ██║   ██╔══██║
 ███████╗██████╔╝╚██████╔╝██║     ██║  ██║   ██║   ██║  ██║
 ╚══════╝╚═════╝  ╚═════╝ ╚═╝     ╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝`

const bannerCompact = "E D U P A T H"

// bannerMinWidth is the narrowest terminal the full banner fits in.
const bannerMinWidth = 62

// RenderBanner returns the EDUPATH banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

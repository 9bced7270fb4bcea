package usecases

import (
	"fmt"
	"strings"

	"github.com/NickDriscoll/dss/internal/modules/sound_streamer/domain"
	"github.com/disgoorg/snowflake/v2"
)

const manualDashes = 30

// A failed track leaves the rest of the queue waiting. The next play starts it
// again from its oldest item, ahead of the newly queued one.
const manualStalledQueueNote = "\nIf a track fails to play, the rest of the queue waits. " +
	"Your next play starts it again from the oldest queued item.\n"

var manualEntries = []struct {
	kind    domain.CommandKind
	purpose string
	args    string
}{
	{domain.CommandPlay, "To summon me to play/queue something", " <url or query>"},
	{domain.CommandSkip, "To skip to the next queued track", ""},
	{domain.CommandPauseToggle, "To toggle music playback (pausing)", ""},
	{domain.CommandDisconnect, "To expel me from the channel you're in", ""},
	{domain.CommandHelp, "To display this very help message", ""},
}

// Manual renders the help text for the given prelude. ownerID is credited as
// the contact for bug reports unless it is zero.
func Manual(prelude string, ownerID snowflake.ID) string {
	dashes := strings.Repeat("-", manualDashes)

	var b strings.Builder
	fmt.Fprintf(&b, "%s**D**riscoll's **S**ound **S**treamer%s\n\n", dashes, dashes)
	b.WriteString("I am a music bot that can stream sound given a direct URL or search query.\n\n")
	for _, e := range manualEntries {
		keywords := strings.Join(domain.Keywords[e.kind], "|")
		fmt.Fprintf(&b, "\t%s:\n\t\t\"%s %s%s\"\n", e.purpose, prelude, keywords, e.args)
	}
	b.WriteString(manualStalledQueueNote)
	if ownerID != 0 {
		fmt.Fprintf(&b, "\n\tContact %s to report any issues or bugs.", mention(ownerID))
	}

	return b.String()
}

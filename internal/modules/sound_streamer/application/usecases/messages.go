package usecases

import (
	"fmt"

	"github.com/disgoorg/snowflake/v2"
)

// Chat replies. Formats taking a mention expect the result of mention().
const (
	msgSearching      = "Searching for \"%s\"..."
	msgNowPlaying     = "Now playing: %s"
	msgNoResults      = "Found no video results for that query. Sorry."
	msgSearchFailed   = "Search is unavailable right now, couldn't look up \"%s\"."
	msgLoadFailed     = "Couldn't load %s."
	msgPlayFailed     = "Couldn't start playback of %s."
	msgQueued         = "Queued: %s"
	msgJoining        = "Joining voice channel \"%s\"..."
	msgJoinFailed     = "Couldn't join voice channel \"%s\"."
	msgMissingPayload = "%s Tell me what to play, e.g. \"%s play <link or search terms>\"."
	msgNotInVoice     = "%s You must be in a voice channel to summon me."
	msgBusyElsewhere  = "%s I'm already streaming in another voice channel here."
	msgNotPlaying     = "%s I'm not playing anything"
	msgSkipping       = "Skipping..."
	msgPausing        = "Pausing..."
	msgResuming       = "Resuming..."
	msgNotSameRoom    = "%s You can't disconnect me when we're not in the same room."
	msgNotConnected   = "%s I'm not even connected to a voice channel."
	msgDisconnecting  = "Disconnecting..."
	msgVoiceLost      = "Lost my voice connection, the queue has been cleared."
	msgUnknownCommand = "Unrecognized command: \"%s\"\nuse \"%s ?\" to display the manual"
	msgCommandFailed  = "Something went wrong with that command, try again."
)

func mention(userID snowflake.ID) string {
	return fmt.Sprintf("<@%s>", userID)
}

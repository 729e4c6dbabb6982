package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	parser := NewCommandParser("!")

	tests := []struct {
		name     string
		text     string
		wantCmd  string
		wantArgs []string
		wantOK   bool
	}{
		{"plain chatter", "hello there", "", nil, false},
		{"bare prefix", "!", "", nil, false},
		{"simple command", "!balance", "balance", nil, true},
		{"uppercase normalized", "!PAY <@123> 500", "pay", []string{"<@123>", "500"}, true},
		{"extra whitespace", "  !dice   100   7  ", "dice", []string{"100", "7"}, true},
		{"prefix mid-message", "hi !balance", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, ok := parser.ParseCommand(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestParseCommandCustomPrefix(t *testing.T) {
	parser := NewCommandParser("$")

	cmd, _, ok := parser.ParseCommand("$balance")
	assert.True(t, ok)
	assert.Equal(t, "balance", cmd)

	_, _, ok = parser.ParseCommand("!balance")
	assert.False(t, ok)
}

func TestParseCommandEmptyPrefixDefaults(t *testing.T) {
	parser := NewCommandParser("")

	cmd, _, ok := parser.ParseCommand("!help")
	assert.True(t, ok)
	assert.Equal(t, "help", cmd)
}

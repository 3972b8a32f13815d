package bot

import (
	"strconv"
	"strings"
)

// CommandParser разбирает текст сообщения на команду и аргументы.
type CommandParser struct {
	botUsername string
}

// NewCommandParser создаёт парсер. botUsername нужен, чтобы понимать
// команды вида /pet@PawerBot в группах.
func NewCommandParser(botUsername string) *CommandParser {
	return &CommandParser{botUsername: botUsername}
}

// ParseCommand разбирает текст. Команда начинается с "/".
// "/pet@OtherBot" в группе адресована не нам и игнорируется.
func (p *CommandParser) ParseCommand(text string) (cmd string, args []string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", nil, false
	}

	fields := strings.Fields(text[1:])
	if len(fields) == 0 {
		return "", nil, false
	}

	cmd = fields[0]
	if at := strings.Index(cmd, "@"); at >= 0 {
		mention := cmd[at+1:]
		cmd = cmd[:at]
		if p.botUsername != "" && !strings.EqualFold(mention, p.botUsername) {
			return "", nil, false
		}
	}
	if cmd == "" {
		return "", nil, false
	}

	return strings.ToLower(cmd), fields[1:], true
}

// ParseStartPayload извлекает id пригласившего из deep-link
// "/start ref123456". Нет или битый payload — 0.
func ParseStartPayload(args []string) int64 {
	if len(args) == 0 {
		return 0
	}
	payload := args[0]
	if !strings.HasPrefix(payload, "ref") {
		return 0
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(payload, "ref"), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

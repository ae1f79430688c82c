package socket

import (
	"log"

	"unhinge_server/models"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server. Each client joins a room
// named after its user id and receives "newMatch" events there.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("❌ Invalid userId in join request")
			return
		}
		log.Printf("👥 Socket %s joined room for user %s\n", c.ID(), userID)
		c.Join(userRoom(userID))
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return server
}

// MatchBroadcaster pushes new-match notifications to both participants
type MatchBroadcaster struct {
	Server *socketio.Server
}

// NotifyNewMatch broadcasts the match to each participant's room
func (b *MatchBroadcaster) NotifyNewMatch(match *models.Match) {
	for _, userID := range match.Participants {
		b.Server.BroadcastToRoom("/", userRoom(userID), "newMatch", match)
	}
	log.Printf("📣 Broadcast newMatch %s\n", match.MatchID)
}

func userRoom(userID string) string {
	return "user:" + userID
}

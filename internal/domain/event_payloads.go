package domain

// RoundPayload is shared by the round.* events
type RoundPayload struct {
	EventName        string `json:"event_name"`
	RoundID          string `json:"round_id"`
	State            string `json:"state"`
	ParticipantCount int    `json:"participant_count"`
	Timestamp        int64  `json:"timestamp"`
}

// TeamResult summarizes one team at settlement
type TeamResult struct {
	Name      string  `json:"name"`
	Kills     int64   `json:"kills"`
	MemberIDs []int64 `json:"member_ids"`
}

// RoundSettledPayload is the payload for round.settled
type RoundSettledPayload struct {
	RoundPayload
	WinningTeam string       `json:"winning_team,omitempty"`
	Teams       []TeamResult `json:"teams,omitempty"`
}

// ParticipantPayload is the payload for player.joined and player.left
type ParticipantPayload struct {
	EventName string `json:"event_name"`
	PlayerID  int64  `json:"player_id"`
	Team      string `json:"team,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// PointsAwardedPayload is the payload for points.awarded
type PointsAwardedPayload struct {
	PlayerID  int64  `json:"player_id"`
	Delta     int64  `json:"delta"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// TransferCompletedPayload is the payload for transfer.completed
type TransferCompletedPayload struct {
	SenderID   int64 `json:"sender_id"`
	ReceiverID int64 `json:"receiver_id"`
	Amount     int64 `json:"amount"`
	Timestamp  int64 `json:"timestamp"`
}

// RewardPurchasedPayload is the payload for reward.purchased
type RewardPurchasedPayload struct {
	PlayerID  int64    `json:"player_id"`
	Reward    string   `json:"reward"`
	Delivered []string `json:"delivered"`
	Cost      int64    `json:"cost"`
	Timestamp int64    `json:"timestamp"`
}

// ZoneContestedPayload is the payload for zone.contested
type ZoneContestedPayload struct {
	EventName string    `json:"event_name"`
	PlayerID  int64     `json:"player_id"`
	Faction   FactionID `json:"faction"`
	Timestamp int64     `json:"timestamp"`
}

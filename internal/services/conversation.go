package services

import "strings"

// ConversationID derives the canonical conversation key for a pair of users.
// The two IDs are ordered lexicographically and joined with "_", which cannot
// occur inside a UUID, so the key is symmetric and collision-free. Callers
// must reject userA == userB before deriving a key.
func ConversationID(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return strings.Join([]string{userA, userB}, "_")
}

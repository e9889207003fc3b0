package docstore

// Key layout. Every per-user value lives under echo:user:{id}; child
// collections pair one hash per record with a sorted-set index scored by
// creation/acquisition time, which preserves the orderings the contract
// promises without server-side sorting.

const keyPrefix = "echo:"

func userKey(userID string) string {
	return keyPrefix + "user:" + userID
}

func emailKey(email string) string {
	return keyPrefix + "email:" + email
}

func taskKey(userID string, taskID string) string {
	return userKey(userID) + ":task:" + taskID
}

func tasksIndexKey(userID string) string {
	return userKey(userID) + ":tasks"
}

func plantKey(userID string, plantID string) string {
	return userKey(userID) + ":plant:" + plantID
}

func plantsIndexKey(userID string) string {
	return userKey(userID) + ":plants"
}

func itemKey(userID string, itemID string) string {
	return userKey(userID) + ":item:" + itemID
}

func inventoryIndexKey(userID string) string {
	return userKey(userID) + ":inventory"
}

func healthKey(userID string, date string) string {
	return userKey(userID) + ":health:" + date
}

func progressKey(userID string) string {
	return userKey(userID) + ":progress"
}

func sessionKey(tokenHash string) string {
	return keyPrefix + "session:" + tokenHash
}

package follow

type FollowStorage interface {
	// Follow идемпотентна: повторная подписка не создает вторую запись.
	// Подписка на себя возвращает storage.ErrSelfFollow.
	Follow(userID, authorID uint) (bool, error)
	// Unfollow без существующей подписки ничего не делает
	Unfollow(userID, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
	FollowedAuthorIDs(userID uint) ([]uint, error)
	CountFollowers(authorID uint) (int, error)
	CountFollowing(userID uint) (int, error)
}

package memory

// slice возвращает окно [offset, offset+limit) из items; limit < 0 - до конца
func slice[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// Storage собирает все in-memory хранилища с общими зависимостями
type Storage struct {
	Users    *UserMemoryStorage
	Groups   *GroupMemoryStorage
	Follows  *FollowMemoryStorage
	Posts    *PostMemoryStorage
	Comments *CommentMemoryStorage
}

func New() *Storage {
	users := NewUserMemoryStorage()
	groups := NewGroupMemoryStorage()
	follows := NewFollowMemoryStorage(users)
	posts := NewPostMemoryStorage(users, groups, follows)
	comments := NewCommentMemoryStorage(posts, users)

	return &Storage{
		Users:    users,
		Groups:   groups,
		Follows:  follows,
		Posts:    posts,
		Comments: comments,
	}
}

package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/roostlabs/roost/internal/models"
)

// Repository provides database access methods. It wraps either a base
// connection or an open transaction; the Upsert Engine hands it the
// current batch transaction so lookups see uncommitted writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AccountRepository provides account-related database operations
type AccountRepository struct {
	*Repository
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(repo *Repository) *AccountRepository {
	return &AccountRepository{Repository: repo}
}

// GetByID retrieves an account by its external id
func (r *AccountRepository) GetByID(ctx context.Context, accountID string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByUsername retrieves an account by handle
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update updates an account
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// ProfileRepository provides profile-related database operations
type ProfileRepository struct {
	*Repository
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(repo *Repository) *ProfileRepository {
	return &ProfileRepository{Repository: repo}
}

// GetByAccountID retrieves a profile by owner account id
func (r *ProfileRepository) GetByAccountID(ctx context.Context, accountID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Update updates a profile
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// UploadOptionsRepository provides upload-options database operations
type UploadOptionsRepository struct {
	*Repository
}

// NewUploadOptionsRepository creates a new upload-options repository
func NewUploadOptionsRepository(repo *Repository) *UploadOptionsRepository {
	return &UploadOptionsRepository{Repository: repo}
}

// GetByAccountID retrieves upload options by owner account id
func (r *UploadOptionsRepository) GetByAccountID(ctx context.Context, accountID string) (*models.UploadOptions, error) {
	var opts models.UploadOptions
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&opts).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &opts, nil
}

// Create creates new upload options
func (r *UploadOptionsRepository) Create(ctx context.Context, opts *models.UploadOptions) error {
	return r.db.WithContext(ctx).Create(opts).Error
}

// Update updates upload options
func (r *UploadOptionsRepository) Update(ctx context.Context, opts *models.UploadOptions) error {
	return r.db.WithContext(ctx).Save(opts).Error
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by its external id
func (r *PostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update updates a post
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// NoteRepository provides note-related database operations
type NoteRepository struct {
	*Repository
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(repo *Repository) *NoteRepository {
	return &NoteRepository{Repository: repo}
}

// GetByID retrieves a note by its external id
func (r *NoteRepository) GetByID(ctx context.Context, noteID string) (*models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).Where("note_id = ?", noteID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// Create creates a new note
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// Update updates a note
func (r *NoteRepository) Update(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

// LikeRepository provides like-related database operations
type LikeRepository struct {
	*Repository
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(repo *Repository) *LikeRepository {
	return &LikeRepository{Repository: repo}
}

// GetByAccountAndPost retrieves a like by its composite key
func (r *LikeRepository) GetByAccountAndPost(ctx context.Context, accountID, postID string) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND post_id = ?", accountID, postID).
		First(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

// Create creates a new like
func (r *LikeRepository) Create(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// Update updates a like
func (r *LikeRepository) Update(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Save(like).Error
}

// FollowRepository provides follower/following database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// GetFollower retrieves a follower row by its composite key
func (r *FollowRepository) GetFollower(ctx context.Context, accountID, followerAccountID string) (*models.Follower, error) {
	var follower models.Follower
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND follower_account_id = ?", accountID, followerAccountID).
		First(&follower).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follower, nil
}

// GetFollowing retrieves a following row by its composite key
func (r *FollowRepository) GetFollowing(ctx context.Context, accountID, followedAccountID string) (*models.Following, error) {
	var following models.Following
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND followed_account_id = ?", accountID, followedAccountID).
		First(&following).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &following, nil
}

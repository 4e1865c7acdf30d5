package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Profiles() ProfileRepository
	Orders() OrderRepository
	Rewards() RewardRepository
	Reviews() ReviewRepository
	Menu() MenuRepository
	OTPCodes() OTPRepository
}

package tags

import "github.com/yohamta/donburi"

var (
	Player  = donburi.NewTag().SetName("Player")
	Enemy   = donburi.NewTag().SetName("Enemy")
	Key     = donburi.NewTag().SetName("Key")
	Bonus   = donburi.NewTag().SetName("Bonus")
	Exit    = donburi.NewTag().SetName("Exit")
	Barrier = donburi.NewTag().SetName("Barrier")
)

// Resolv tags for hitbox objects
const (
	ResolvSolid   = "solid"
	ResolvPlayer  = "Player"
	ResolvEnemy   = "Enemy"
	ResolvPickup  = "pickup"
	ResolvExit    = "exit"
	ResolvBarrier = "barrier"
)

package game

const (
	FieldWidth              = 640.0
	FieldHeight             = 480.0
	PlayerWidth             = 50.0
	PlayerHeight            = 50.0
	CollectibleSize         = 30.0 // collectibles are always a fixed square for overlap tests
	CollectibleMinValue     = 1
	CollectibleMaxValue     = 10
	DefaultCollectibleFloor = 5
	DefaultMoveSpeed        = 15.0 // what the stock client sends per keypress
)

package game

// Config carries every tunable of the simulation. Values are flat so they can
// be overridden from the config file or left at the defaults below.
type Config struct {
	// Loop
	FixedStep    float64 `mapstructure:"fixed_step"`
	MaxFrameTime float64 `mapstructure:"max_frame_time"`

	// World tiling
	TileSize    float64 `mapstructure:"tile_size"`
	RoadSpacing float64 `mapstructure:"road_spacing"`
	RoadWidth   float64 `mapstructure:"road_width"`

	// Player
	PlayerWidth       float64 `mapstructure:"player_width"`
	PlayerLength      float64 `mapstructure:"player_length"`
	PlayerBaseSpeed   float64 `mapstructure:"player_base_speed"`
	BoostMultiplier   float64 `mapstructure:"boost_multiplier"`
	BoostDuration     float64 `mapstructure:"boost_duration"`
	BoostCooldown     float64 `mapstructure:"boost_cooldown"`
	RotationRate      float64 `mapstructure:"rotation_rate"`
	PlayerMaxHealth   int     `mapstructure:"player_max_health"`
	KnockRetention    float64 `mapstructure:"knock_retention"`
	KnockMinSpeed     float64 `mapstructure:"knock_min_speed"`
	Gravity           float64 `mapstructure:"gravity"`
	FallDeathY        float64 `mapstructure:"fall_death_y"`
	FallSpinRate      float64 `mapstructure:"fall_spin_rate"`
	BuildingPushOut   float64 `mapstructure:"building_push_out"`
	ObstacleDamage    int     `mapstructure:"obstacle_damage"`
	BuildingDamage    int     `mapstructure:"building_damage"`
	TrafficDamage     int     `mapstructure:"traffic_damage"`
	CollisionCooldown float64 `mapstructure:"collision_cooldown"`

	// Chasers
	ChaserWidth       float64 `mapstructure:"chaser_width"`
	ChaserLength      float64 `mapstructure:"chaser_length"`
	ChaserFloorSpeed  float64 `mapstructure:"chaser_floor_speed"`
	ChaserCatchSpeed  float64 `mapstructure:"chaser_catch_speed"`
	ChaserTurnRate    float64 `mapstructure:"chaser_turn_rate"`
	ChaserAccel       float64 `mapstructure:"chaser_accel"`
	ChaserSpeedMargin float64 `mapstructure:"chaser_speed_margin"`
	CutoffTrigger     float64 `mapstructure:"cutoff_trigger"`
	CutoffDuration    float64 `mapstructure:"cutoff_duration"`
	CutoffForwardBias float64 `mapstructure:"cutoff_forward_bias"`
	CutoffChance      float64 `mapstructure:"cutoff_chance"`
	SeparationRadius  float64 `mapstructure:"separation_radius"`
	SeparationWeight  float64 `mapstructure:"separation_weight"`
	WanderAmplitude   float64 `mapstructure:"wander_amplitude"`
	WanderFrequency   float64 `mapstructure:"wander_frequency"`
	InterceptFactor   float64 `mapstructure:"intercept_factor"`
	InterceptMin      float64 `mapstructure:"intercept_min"`
	InterceptMax      float64 `mapstructure:"intercept_max"`
	FlankFarDist      float64 `mapstructure:"flank_far_dist"`
	FlankNearDist     float64 `mapstructure:"flank_near_dist"`
	FlankMargin       float64 `mapstructure:"flank_margin"`

	// Wanted / spawning
	WantedThresholds   []float64 `mapstructure:"wanted_thresholds"`
	MaxWantedLevel     int       `mapstructure:"max_wanted_level"`
	SpawnBaseInterval  float64   `mapstructure:"spawn_base_interval"`
	SpawnReduction     float64   `mapstructure:"spawn_reduction"`
	SpawnMinInterval   float64   `mapstructure:"spawn_min_interval"`
	BasePoliceCount    int       `mapstructure:"base_police_count"`
	PolicePerLevel     int       `mapstructure:"police_per_level"`
	EncircleLevel      int       `mapstructure:"encircle_level"`
	SpawnBehindDist    float64   `mapstructure:"spawn_behind_dist"`
	SpawnLateralJitter float64   `mapstructure:"spawn_lateral_jitter"`
	SpawnCircleMin     float64   `mapstructure:"spawn_circle_min"`
	SpawnCircleMax     float64   `mapstructure:"spawn_circle_max"`

	// Obstacles
	ObstaclePoolSize    int     `mapstructure:"obstacle_pool_size"`
	ObstacleInterval    float64 `mapstructure:"obstacle_interval"`
	ObstacleIntervalDec float64 `mapstructure:"obstacle_interval_dec"`
	ObstacleIntervalMin float64 `mapstructure:"obstacle_interval_min"`
	SpawnAheadMin       float64 `mapstructure:"spawn_ahead_min"`
	SpawnAheadMax       float64 `mapstructure:"spawn_ahead_max"`
	MovingChance        float64 `mapstructure:"moving_chance"`
	MovingSpeedMin      float64 `mapstructure:"moving_speed_min"`
	MovingSpeedMax      float64 `mapstructure:"moving_speed_max"`
	RemoveBehindDist    float64 `mapstructure:"remove_behind_dist"`
	NearMissDist        float64 `mapstructure:"near_miss_dist"`
	NearMissBand        float64 `mapstructure:"near_miss_band"`
	NearMissBonus       int     `mapstructure:"near_miss_bonus"`

	// Traffic
	TrafficCount    int     `mapstructure:"traffic_count"`
	TrafficSpeedMin float64 `mapstructure:"traffic_speed_min"`
	TrafficSpeedMax float64 `mapstructure:"traffic_speed_max"`

	// Difficulty
	DifficultyInterval  float64 `mapstructure:"difficulty_interval"`
	DifficultyIncrement float64 `mapstructure:"difficulty_increment"`
	DifficultyMaxMult   float64 `mapstructure:"difficulty_max_mult"`

	// Score
	ScorePerMeter float64 `mapstructure:"score_per_meter"`
}

func DefaultConfig() Config {
	return Config{
		FixedStep:    1.0 / 60.0,
		MaxFrameTime: 0.1,

		TileSize:    200,
		RoadSpacing: 50,
		RoadWidth:   12,

		PlayerWidth:       2,
		PlayerLength:      4,
		PlayerBaseSpeed:   30,
		BoostMultiplier:   1.8,
		BoostDuration:     2.5,
		BoostCooldown:     5,
		RotationRate:      2.2,
		PlayerMaxHealth:   100,
		KnockRetention:    0.9,
		KnockMinSpeed:     0.05,
		Gravity:           25,
		FallDeathY:        -30,
		FallSpinRate:      3.5,
		BuildingPushOut:   12,
		ObstacleDamage:    10,
		BuildingDamage:    5,
		TrafficDamage:     5,
		CollisionCooldown: 0.3,

		ChaserWidth:       2,
		ChaserLength:      4.2,
		ChaserFloorSpeed:  12,
		ChaserCatchSpeed:  38,
		ChaserTurnRate:    6,
		ChaserAccel:       24,
		ChaserSpeedMargin: 4,
		CutoffTrigger:     25,
		CutoffDuration:    1.8,
		CutoffForwardBias: 18,
		CutoffChance:      0.35,
		SeparationRadius:  8,
		SeparationWeight:  6,
		WanderAmplitude:   2.5,
		WanderFrequency:   3,
		InterceptFactor:   0.04,
		InterceptMin:      0.2,
		InterceptMax:      1.2,
		FlankFarDist:      40,
		FlankNearDist:     8,
		FlankMargin:       2,

		WantedThresholds:   []float64{0, 30, 70, 120, 180},
		MaxWantedLevel:     5,
		SpawnBaseInterval:  8,
		SpawnReduction:     1.5,
		SpawnMinInterval:   2.5,
		BasePoliceCount:    2,
		PolicePerLevel:     2,
		EncircleLevel:      4,
		SpawnBehindDist:    35,
		SpawnLateralJitter: 10,
		SpawnCircleMin:     30,
		SpawnCircleMax:     60,

		ObstaclePoolSize:    24,
		ObstacleInterval:    3.5,
		ObstacleIntervalDec: 0.35,
		ObstacleIntervalMin: 0.9,
		SpawnAheadMin:       40,
		SpawnAheadMax:       80,
		MovingChance:        0.3,
		MovingSpeedMin:      6,
		MovingSpeedMax:      12,
		RemoveBehindDist:    60,
		NearMissDist:        4,
		NearMissBand:        6,
		NearMissBonus:       50,

		TrafficCount:    12,
		TrafficSpeedMin: 8,
		TrafficSpeedMax: 14,

		DifficultyInterval:  20,
		DifficultyIncrement: 0.15,
		DifficultyMaxMult:   2.5,

		ScorePerMeter: 1,
	}
}

package common

const RedisKeyStats = "stats"

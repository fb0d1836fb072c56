package model

// Stats is serialized as [totalUsers, totalArtists, totalSeries, totalAssets].
type Stats struct {
	Users   int64
	Artists int64
	Series  int64
	Assets  int64
}

func (s Stats) Totals() []int64 {
	return []int64{s.Users, s.Artists, s.Series, s.Assets}
}

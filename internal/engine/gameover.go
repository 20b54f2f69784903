package engine

import "rpg-server/internal/models"

// CheckGameOver returns nil while both actors stand. The player is checked first,
// so a double knockout is a player loss.
func CheckGameOver(player, enemy models.Actor) *models.GameOver {
	switch {
	case player.Defeated():
		return &models.GameOver{GameOver: true, Winner: models.SideEnemy, Loser: models.SidePlayer}
	case enemy.Defeated():
		return &models.GameOver{GameOver: true, Winner: models.SidePlayer, Loser: models.SideEnemy}
	default:
		return nil
	}
}

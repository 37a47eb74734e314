package main

import (
	"github.com/trezcool/videoteca/core/auth"
)

// hashPassword prints the bcrypt hash to configure as the admin password hash.
func (cli *commandLine) hashPassword(pwd string) error {
	hash, err := auth.HashPassword(pwd)
	if err != nil {
		return err
	}
	cli.printf("%s\n", hash)
	return nil
}

// token prints a JWT of the administrator `uname`, eg. for scripted uploads.
func (cli *commandLine) token(uname string) error {
	token, err := auth.GenerateToken(auth.NewAdminClaims(uname, cli.conf), cli.conf.SecretKey)
	if err != nil {
		return err
	}
	cli.printf("%s\n", token)
	return nil
}
